package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/yildizm/phishscan/internal/logger"
)

// Client performs exactly one request per Analyze call and normalizes the
// answer. It holds no per-request state and is safe for concurrent use.
type Client struct {
	config   *Config
	provider Provider
	log      *logger.Logger
	now      func() time.Time
}

// Option customizes a Client
type Option func(*Client)

// WithLogger sets the client logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient wraps provider with validation, timeout and normalization
func NewClient(config *Config, provider Provider, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, NewConfigurationError(config.ProviderName(), "provider", "provider is required")
	}

	c := &Client{
		config:   config,
		provider: provider,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Open resolves the configured provider from reg and builds a client around it
func Open(config *Config, reg Registry, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if reg == nil {
		reg = GlobalRegistry()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	provider, err := reg.Create(config.ProviderName(), config)
	if err != nil {
		return nil, err
	}

	return NewClient(config, provider, opts...)
}

// ProviderName returns the name of the wrapped provider
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// Analyze classifies message. It never retries.
func (c *Client) Analyze(ctx context.Context, message string) (*Result, error) {
	if strings.TrimSpace(message) == "" {
		return nil, NewInvalidInputError("message is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	start := c.now()
	c.log.DebugWithFields("sending message", []logger.Field{
		logger.Provider(c.provider.Name()),
		logger.F("length", len(message)),
	})

	verdict, err := c.provider.Classify(ctx, message)
	received := c.now()
	if err != nil {
		err = c.classifyFailure(ctx, err)
		c.log.DebugWithFields("analysis failed", []logger.Field{
			logger.Provider(c.provider.Name()),
			logger.Duration(received.Sub(start)),
			logger.Error(err),
		})
		return nil, err
	}

	result, err := Normalize(c.provider.Name(), verdict, received)
	if err != nil {
		return nil, err
	}

	c.log.DebugWithFields("analysis complete", []logger.Field{
		logger.Provider(c.provider.Name()),
		logger.Duration(received.Sub(start)),
		logger.F("classification", result.Classification),
		logger.F("confidence", result.Confidence),
	})

	return result, nil
}

// HealthCheck probes the provider if it supports it
func (c *Client) HealthCheck(ctx context.Context) error {
	hc, ok := c.provider.(HealthChecker)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	if err := hc.HealthCheck(ctx); err != nil {
		return c.classifyFailure(ctx, err)
	}
	return nil
}

// classifyFailure keeps taxonomy errors as they are and folds anything else
// (context expiry, provider bugs) into a TransportError
func (c *Client) classifyFailure(ctx context.Context, err error) error {
	if TypeOf(err) != "" {
		return err
	}

	terr := NewTransportError(c.provider.Name(), err)
	terr.Timeout = isTimeout(ctx, err)
	return terr
}
