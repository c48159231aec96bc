package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/logger"
	"github.com/yildizm/phishscan/internal/monitor"
)

const msgNoText = "No text provided"

// AnalyzeRequest accepts the canonical "message" field and the Flask-style
// "text" field
type AnalyzeRequest struct {
	Message string `json:"message"`
	Text    string `json:"text"`
}

func (r *AnalyzeRequest) content() string {
	if strings.TrimSpace(r.Message) != "" {
		return r.Message
	}
	return r.Text
}

// AnalyzeResponse is the body of a successful analysis
type AnalyzeResponse struct {
	RequestID      string    `json:"request_id"`
	Classification string    `json:"classification"`
	Confidence     float64   `json:"confidence"`
	Details        string    `json:"details"`
	Timestamp      time.Time `json:"timestamp"`
	Provider       string    `json:"provider"`
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Provider string `json:"provider"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "healthy",
		Message:  "Backend is running",
		Provider: s.analyzer.ProviderName(),
	}

	if err := s.analyzer.HealthCheck(r.Context()); err != nil {
		s.log.WarnWithFields("health check failed", []logger.Field{
			logger.Provider(resp.Provider),
			logger.Error(err),
		})
		resp.Status = "unhealthy"
		resp.Error = analysis.UserMessage(err)
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var body AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Message is too long")
			return
		}
		writeError(w, http.StatusBadRequest, msgNoText)
		return
	}

	message := body.content()
	if strings.TrimSpace(message) == "" {
		writeError(w, http.StatusBadRequest, msgNoText)
		return
	}

	requestID := RequestID(r.Context())
	result, err := s.metrics.Track(func() (*analysis.Result, error) {
		return s.analyzer.Analyze(r.Context(), message)
	})
	if err != nil {
		status := statusFor(err)
		s.log.ErrorWithFields("analysis failed", []logger.Field{
			logger.F("request_id", requestID),
			logger.Provider(s.analyzer.ProviderName()),
			logger.Status(status),
			logger.Error(err),
		})
		writeError(w, status, analysis.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		RequestID:      requestID,
		Classification: result.Classification.String(),
		Confidence:     result.Confidence,
		Details:        result.Details,
		Timestamp:      result.Timestamp,
		Provider:       result.Provider,
	})
}

// MetricsResponse is the body of GET /api/metrics
type MetricsResponse struct {
	Provider string `json:"provider"`
	monitor.Snapshot
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MetricsResponse{
		Provider: s.analyzer.ProviderName(),
		Snapshot: s.metrics.Snapshot(),
	})
}

// statusFor maps an analysis failure onto the response status
func statusFor(err error) int {
	switch analysis.TypeOf(err) {
	case analysis.ErrTypeInvalidInput:
		return http.StatusBadRequest
	case analysis.ErrTypeTransport, analysis.ErrTypeMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
