package flask

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yildizm/phishscan/internal/analysis"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*analysis.Client, func()) {
	t.Helper()

	server := httptest.NewServer(handler)

	cfg := analysis.DefaultConfig()
	cfg.UseMock = false
	cfg.Provider = analysis.ProviderFlask
	cfg.EndpointURL = server.URL + "/api/analyze"
	cfg.RequestTimeout = time.Second

	reg := analysis.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	client, err := analysis.Open(cfg, reg)
	if err != nil {
		server.Close()
		t.Fatalf("Open failed: %v", err)
	}
	return client, server.Close
}

func TestProvider_Classify(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		want       analysis.Classification
		confidence float64
	}{
		{"phishing", `{"text":"x","is_phishing":true,"confidence":0.87,"message":"Suspicious link"}`, analysis.ClassificationPhishing, 87},
		{"safe", `{"text":"x","is_phishing":false,"confidence":0.95,"message":"ok"}`, analysis.ClassificationSafe, 95},
		{"classification wins", `{"is_phishing":false,"classification":"SUSPICIOUS","confidence":0.6}`, analysis.ClassificationSuspicious, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var req AnalyzeRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
					t.Errorf("Expected text field in request, err=%v", err)
				}
				_, _ = w.Write([]byte(tt.body))
			})
			defer closeFn()

			result, err := client.Analyze(context.Background(), "Aap ka parcel ruk gaya hai")
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if result.Classification != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, result.Classification)
			}
			if result.Confidence < tt.confidence-1e-9 || result.Confidence > tt.confidence+1e-9 {
				t.Errorf("Expected confidence %v, got %v", tt.confidence, result.Confidence)
			}
		})
	}
}

func TestProvider_Classify_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errType analysis.ErrorType
	}{
		{"no text", http.StatusBadRequest, `{"error":"No text provided"}`, analysis.ErrTypeTransport},
		{"server exception", http.StatusInternalServerError, `{"error":"NoneType"}`, analysis.ErrTypeTransport},
		{"missing verdict", http.StatusOK, `{"confidence":0.5}`, analysis.ErrTypeMalformedResponse},
		{"missing confidence", http.StatusOK, `{"is_phishing":true}`, analysis.ErrTypeMalformedResponse},
		{"confidence as percent", http.StatusOK, `{"is_phishing":true,"confidence":87}`, analysis.ErrTypeMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			defer closeFn()

			_, err := client.Analyze(context.Background(), "hello")
			if got := analysis.TypeOf(err); got != tt.errType {
				t.Errorf("Expected %s, got %s (%v)", tt.errType, got, err)
			}
		})
	}
}

func TestProvider_HealthCheck(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("Expected /api/health, got %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy", Message: "Backend is running"})
	})
	defer closeFn()

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
