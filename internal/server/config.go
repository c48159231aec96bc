package server

import (
	"time"

	"github.com/yildizm/phishscan/internal/logger"
)

// Config configures the demo analysis backend
type Config struct {
	// ListenAddr is the HTTP listen address (e.g. ":5000")
	ListenAddr string

	// AllowedOrigins for CORS; "*" allows any origin
	AllowedOrigins []string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxBodyBytes caps the size of an analyze request body
	MaxBodyBytes int64

	Logger *logger.Logger
}

// DefaultConfig returns a configuration listening on :5000 like the
// original Flask backend
func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":5000",
		AllowedOrigins: []string{"*"},
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxBodyBytes:   64 << 10,
	}
}
