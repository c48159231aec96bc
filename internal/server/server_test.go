package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/analysis/providers/mock"
	"github.com/yildizm/phishscan/internal/logger"
	"github.com/yildizm/phishscan/internal/server"
)

// fakeAnalyzer returns a fixed answer and records what it saw
type fakeAnalyzer struct {
	result *analysis.Result
	err    error
	health error
	calls  atomic.Int32
	last   atomic.Value
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, message string) (*analysis.Result, error) {
	f.calls.Add(1)
	f.last.Store(message)
	return f.result, f.err
}

func (f *fakeAnalyzer) HealthCheck(ctx context.Context) error { return f.health }

func (f *fakeAnalyzer) ProviderName() string { return "fake" }

func phishing() *analysis.Result {
	return &analysis.Result{
		Classification: analysis.ClassificationPhishing,
		Confidence:     92,
		Details:        "Asks for identity documents",
		Timestamp:      time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC),
		Provider:       "fake",
	}
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

// ─── Health ────────────────────────────────────────────────────────────

func TestServer_Health(t *testing.T) {
	s := server.New(server.DefaultConfig(), &fakeAnalyzer{})

	rec := doJSON(t, s, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body server.HealthResponse
	decodeJSON(t, rec, &body)
	if body.Status != "healthy" || body.Message != "Backend is running" || body.Provider != "fake" {
		t.Errorf("unexpected health body %+v", body)
	}
}

func TestServer_Health_Unhealthy(t *testing.T) {
	fake := &fakeAnalyzer{health: analysis.NewTransportError("flask", errors.New("dial tcp: refused"))}
	s := server.New(server.DefaultConfig(), fake)

	rec := doJSON(t, s, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var body server.HealthResponse
	decodeJSON(t, rec, &body)
	if body.Status != "unhealthy" {
		t.Errorf("expected unhealthy, got %q", body.Status)
	}
	if strings.Contains(body.Error, "dial tcp") {
		t.Errorf("health error must not expose the cause, got %q", body.Error)
	}
}

// ─── Analyze ───────────────────────────────────────────────────────────

func TestServer_Analyze(t *testing.T) {
	fake := &fakeAnalyzer{result: phishing()}
	s := server.New(server.DefaultConfig(), fake)

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", `{"message":"Apni ID yahan bhejein"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body server.AnalyzeResponse
	decodeJSON(t, rec, &body)
	if body.Classification != "PHISHING" || body.Confidence != 92 || body.Provider != "fake" {
		t.Errorf("unexpected body %+v", body)
	}
	if body.RequestID == "" || body.RequestID != rec.Header().Get(server.RequestIDHeader) {
		t.Errorf("expected request id %q to match header %q", body.RequestID, rec.Header().Get(server.RequestIDHeader))
	}
	if got, _ := fake.last.Load().(string); got != "Apni ID yahan bhejein" {
		t.Errorf("analyzer received %q", got)
	}
}

func TestServer_Analyze_AcceptsTextField(t *testing.T) {
	fake := &fakeAnalyzer{result: phishing()}
	s := server.New(server.DefaultConfig(), fake)

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", `{"text":"Hello dost"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got, _ := fake.last.Load().(string); got != "Hello dost" {
		t.Errorf("analyzer received %q", got)
	}
}

func TestServer_Analyze_BadRequest(t *testing.T) {
	bodies := map[string]string{
		"empty body":    "",
		"invalid json":  "{not json",
		"blank message": `{"message":"   "}`,
		"no fields":     `{}`,
	}

	for name, payload := range bodies {
		t.Run(name, func(t *testing.T) {
			fake := &fakeAnalyzer{result: phishing()}
			s := server.New(server.DefaultConfig(), fake)

			rec := doJSON(t, s, http.MethodPost, "/api/analyze", payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}

			var body map[string]string
			decodeJSON(t, rec, &body)
			if body["error"] != "No text provided" {
				t.Errorf("unexpected error %q", body["error"])
			}
			if fake.calls.Load() != 0 {
				t.Error("analyzer must not be called for a rejected request")
			}
		})
	}
}

func TestServer_Analyze_BodyTooLarge(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.MaxBodyBytes = 32
	s := server.New(cfg, &fakeAnalyzer{result: phishing()})

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", `{"message":"`+strings.Repeat("a", 100)+`"}`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestServer_Analyze_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"transport", analysis.NewStatusError("http", 503, "overloaded"), http.StatusBadGateway},
		{"malformed", analysis.NewMalformedResponseError("http", "confidence", "missing", nil), http.StatusBadGateway},
		{"invalid input", analysis.NewInvalidInputError("empty"), http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			cfg := server.DefaultConfig()
			cfg.Logger = logger.NewWithWriter("server", nil, &logs)
			s := server.New(cfg, &fakeAnalyzer{err: tt.err})

			rec := doJSON(t, s, http.MethodPost, "/api/analyze", `{"message":"hello"}`)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}

			var body map[string]string
			decodeJSON(t, rec, &body)
			if body["error"] != analysis.UserMessage(tt.err) {
				t.Errorf("expected user message, got %q", body["error"])
			}
			if !strings.Contains(logs.String(), "analysis failed") {
				t.Errorf("expected failure to be logged, got %q", logs.String())
			}
		})
	}
}

func TestServer_Analyze_WithMockClient(t *testing.T) {
	cfg := analysis.DefaultConfig()
	cfg.MockDelay = 0

	client, err := analysis.NewClient(cfg, mock.New(mock.WithDelay(0)))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	s := server.New(server.DefaultConfig(), client)
	rec := doJSON(t, s, http.MethodPost, "/api/analyze", `{"message":"Mubarak ho, inaam jeetein"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body server.AnalyzeResponse
	decodeJSON(t, rec, &body)
	if body.Classification != "SAFE" && body.Classification != "PHISHING" {
		t.Errorf("unexpected mock classification %q", body.Classification)
	}
	if body.Confidence < 75 || body.Confidence > 99 {
		t.Errorf("mock confidence out of range: %v", body.Confidence)
	}
}

// ─── Request IDs, CORS and routing ─────────────────────────────────────

func TestServer_RequestID(t *testing.T) {
	s := server.New(server.DefaultConfig(), &fakeAnalyzer{})

	rec := doJSON(t, s, http.MethodGet, "/api/health", "")
	if _, err := uuid.Parse(rec.Header().Get(server.RequestIDHeader)); err != nil {
		t.Errorf("expected generated UUID, got %q", rec.Header().Get(server.RequestIDHeader))
	}

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(server.RequestIDHeader, id)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Header().Get(server.RequestIDHeader) != id {
		t.Errorf("expected caller's request id to be kept")
	}
}

func TestServer_CORS(t *testing.T) {
	s := server.New(server.DefaultConfig(), &fakeAnalyzer{})

	rec := doJSON(t, s, http.MethodOptions, "/api/analyze", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected CORS origin *, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Errorf("unexpected allowed methods %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestServer_CORS_RestrictedOrigins(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.AllowedOrigins = []string{"https://app.example"}
	s := server.New(cfg, &fakeAnalyzer{})

	for origin, want := range map[string]string{
		"https://app.example":  "https://app.example",
		"https://evil.example": "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != want {
			t.Errorf("origin %s: expected %q, got %q", origin, want, got)
		}
	}
}

func TestServer_NotFound(t *testing.T) {
	s := server.New(server.DefaultConfig(), &fakeAnalyzer{})

	rec := doJSON(t, s, http.MethodGet, "/api/unknown", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/analyze", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestServer_Metrics(t *testing.T) {
	fake := &fakeAnalyzer{result: phishing()}
	s := server.New(server.DefaultConfig(), fake)

	doJSON(t, s, http.MethodPost, "/api/analyze", `{"message":"Apni ID yahan bhejein"}`)
	doJSON(t, s, http.MethodPost, "/api/analyze", `{"message":"   "}`)

	fake.result = nil
	fake.err = analysis.NewStatusError("flask", 500, "")
	doJSON(t, s, http.MethodPost, "/api/analyze", `{"message":"hello"}`)

	rec := doJSON(t, s, http.MethodGet, "/api/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp server.MetricsResponse
	decodeJSON(t, rec, &resp)

	// the blank message is rejected before it reaches the analyzer
	if resp.Total != 2 {
		t.Errorf("expected 2 scans, got %d", resp.Total)
	}
	if resp.Verdicts["PHISHING"] != 1 {
		t.Errorf("expected one phishing verdict, got %v", resp.Verdicts)
	}
	if resp.Failures["transport"] != 1 {
		t.Errorf("expected one transport failure, got %v", resp.Failures)
	}
	if resp.Provider != "fake" {
		t.Errorf("expected provider fake, got %q", resp.Provider)
	}
}

func TestServer_HTTPServer(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	hs := server.New(cfg, &fakeAnalyzer{}).HTTPServer()

	if hs.Addr != "127.0.0.1:0" || hs.Handler == nil {
		t.Errorf("unexpected http server %+v", hs)
	}
}
