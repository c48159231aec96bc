package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/logger"
	"github.com/yildizm/phishscan/internal/monitor"
)

// Analyzer is the part of analysis.Client the backend needs
type Analyzer interface {
	Analyze(ctx context.Context, message string) (*analysis.Result, error)
	HealthCheck(ctx context.Context) error
	ProviderName() string
}

// Server exposes an Analyzer over HTTP with the contract browser front ends
// expect: GET /api/health and POST /api/analyze.
type Server struct {
	cfg      Config
	analyzer Analyzer
	router   chi.Router
	log      *logger.Logger
	metrics  *monitor.ScanCollector
	now      func() time.Time
}

// New creates a Server around analyzer
func New(cfg Config, analyzer Analyzer) *Server {
	defaults := DefaultConfig()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaults.ListenAddr
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = defaults.AllowedOrigins
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaults.MaxBodyBytes
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		router:   chi.NewRouter(),
		log:      log,
		metrics:  monitor.New(),
		now:      time.Now,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.requestIDMiddleware)
	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/api/health", s.optionsHandler("GET"))
	r.Options("/api/analyze", s.optionsHandler("POST"))
	r.Options("/api/metrics", s.optionsHandler("GET"))

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/api/metrics", s.handleMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

type requestIDKey struct{}

// RequestIDHeader carries the per-request identifier
const RequestIDHeader = "X-Request-ID"

// requestIDMiddleware tags every request with an ID, reusing the caller's if
// it sent a valid UUID
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestID returns the ID assigned to the request carrying ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			w.Header().Set("Access-Control-Max-Age", "86400")
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}

		next.ServeHTTP(w, r)
	})
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or ""
func (s *Server) allowOrigin(origin string) string {
	if slices.Contains(s.cfg.AllowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.cfg.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	s.router.ServeHTTP(rec, r)

	s.log.InfoWithFields("http_request", []logger.Field{
		logger.F("method", r.Method),
		logger.F("path", r.URL.Path),
		logger.Status(rec.status),
		logger.F("request_id", rec.Header().Get(RequestIDHeader)),
		logger.Duration(s.now().Sub(start)),
	})
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}
}

// statusRecorder remembers the status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
