package analysis

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yildizm/phishscan/internal/logger"
)

// stubProvider returns a fixed verdict and counts calls
type stubProvider struct {
	verdict *Verdict
	err     error
	delay   time.Duration
	calls   atomic.Int32
	health  error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Classify(ctx context.Context, message string) (*Verdict, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.verdict, s.err
}

func (s *stubProvider) HealthCheck(ctx context.Context) error { return s.health }

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.RequestTimeout = time.Second
	return cfg
}

func TestClient_Analyze(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	provider := &stubProvider{verdict: &Verdict{Label: "SCAM", Confidence: 87, Details: "verify the sender"}}

	client, err := NewClient(testConfig(), provider, WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result, err := client.Analyze(context.Background(), "Aap ka account band ho gaya hai")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Classification != ClassificationPhishing {
		t.Errorf("Expected PHISHING, got %s", result.Classification)
	}
	if result.Confidence != 87 {
		t.Errorf("Expected confidence 87, got %v", result.Confidence)
	}
	if !result.Timestamp.Equal(fixed) {
		t.Errorf("Expected timestamp %v, got %v", fixed, result.Timestamp)
	}
	if result.Provider != "stub" {
		t.Errorf("Expected provider stub, got %s", result.Provider)
	}
	if got := provider.calls.Load(); got != 1 {
		t.Errorf("Expected exactly one provider call, got %d", got)
	}
}

func TestClient_Analyze_InvalidInputMakesNoRequest(t *testing.T) {
	provider := &stubProvider{verdict: &Verdict{Label: "SAFE", Confidence: 90}}
	client, err := NewClient(testConfig(), provider)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	for _, msg := range []string{"", "   ", "\n\t "} {
		_, err := client.Analyze(context.Background(), msg)
		if !IsInvalidInputError(err) {
			t.Errorf("Analyze(%q) expected InvalidInputError, got %v", msg, err)
		}
	}

	if got := provider.calls.Load(); got != 0 {
		t.Errorf("Expected no provider calls, got %d", got)
	}
}

func TestClient_Analyze_Timeout(t *testing.T) {
	cfg := testConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	provider := &stubProvider{verdict: &Verdict{Label: "SAFE", Confidence: 90}, delay: time.Second}

	client, err := NewClient(cfg, provider)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.Analyze(context.Background(), "hello")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if !terr.Timeout {
		t.Error("Expected Timeout to be set")
	}
}

func TestClient_Analyze_ProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"status error kept", NewStatusError("stub", 500, "boom"), ErrTypeTransport},
		{"malformed kept", NewMalformedResponseError("stub", "", "bad json", nil), ErrTypeMalformedResponse},
		{"plain error becomes transport", errors.New("socket closed"), ErrTypeTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(testConfig(), &stubProvider{err: tt.err})
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}

			_, err = client.Analyze(context.Background(), "hello")
			if got := TypeOf(err); got != tt.want {
				t.Errorf("Expected %s, got %s (%v)", tt.want, got, err)
			}
		})
	}
}

func TestClient_Analyze_UnknownLabel(t *testing.T) {
	client, err := NewClient(testConfig(), &stubProvider{verdict: &Verdict{Label: "MAYBE", Confidence: 60}})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.Analyze(context.Background(), "hello")
	if !IsMalformedResponseError(err) {
		t.Errorf("Expected MalformedResponseError, got %v", err)
	}
}

func TestClient_Analyze_LogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("analysis", logger.VerboseFunc(func() bool { return true }), &buf)

	client, err := NewClient(testConfig(), &stubProvider{verdict: &Verdict{Label: "SAFE", Confidence: 0.95}}, WithLogger(log))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.Analyze(context.Background(), "secret message text"); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "analysis complete") {
		t.Errorf("Expected completion log, got %q", out)
	}
	if strings.Contains(out, "secret message text") {
		t.Error("Message text must not be logged")
	}
}

func TestClient_HealthCheck(t *testing.T) {
	client, err := NewClient(testConfig(), &stubProvider{health: NewStatusError("stub", 503, "")})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if err := client.HealthCheck(context.Background()); !IsTransportError(err) {
		t.Errorf("Expected TransportError, got %v", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	cfg := testConfig()
	cfg.RequestTimeout = 0
	if _, err := NewClient(cfg, &stubProvider{}); !IsConfigurationError(err) {
		t.Errorf("Expected configuration error for zero timeout, got %v", err)
	}

	if _, err := NewClient(testConfig(), nil); !IsConfigurationError(err) {
		t.Errorf("Expected configuration error for nil provider, got %v", err)
	}

	cfg = testConfig()
	cfg.UseMock = true
	cfg.Provider = ProviderFlask
	if _, err := NewClient(cfg, &stubProvider{}); !IsConfigurationError(err) {
		t.Errorf("Expected configuration error for use_mock with a remote provider, got %v", err)
	}

	cfg = testConfig()
	cfg.UseMock = false
	cfg.Provider = ProviderHTTP
	cfg.EndpointURL = ""
	if _, err := NewClient(cfg, &stubProvider{}); !IsConfigurationError(err) {
		t.Errorf("Expected configuration error for missing endpoint, got %v", err)
	}
}
