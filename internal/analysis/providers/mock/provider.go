package mock

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/yildizm/phishscan/internal/analysis"
)

const (
	safeDetails = "This message appears to be legitimate and safe. No suspicious patterns or phishing indicators were detected."
	scamDetails = "This message contains suspicious patterns commonly found in phishing attempts. Please verify the sender before taking any action."
)

// Provider answers without touching the network. It waits for the configured
// delay and then returns a random SAFE or SCAM verdict.
type Provider struct {
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// Option customizes a mock provider
type Option func(*Provider)

// WithRand sets the random source, mainly for deterministic tests
func WithRand(rng *rand.Rand) Option {
	return func(p *Provider) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithDelay overrides the simulated processing time
func WithDelay(d time.Duration) Option {
	return func(p *Provider) {
		if d >= 0 {
			p.delay = d
		}
	}
}

// New creates a mock provider
func New(opts ...Option) *Provider {
	p := &Provider{
		delay: 3 * time.Second,
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *Provider) Name() string {
	return analysis.ProviderMock
}

// Classify waits for the simulated delay, honoring cancellation
func (p *Provider) Classify(ctx context.Context, message string) (*analysis.Verdict, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return p.roll(), nil
}

// HealthCheck always succeeds
func (p *Provider) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func (p *Provider) roll() *analysis.Verdict {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rng.IntN(2) == 0 {
		return &analysis.Verdict{
			Label:      "SAFE",
			Confidence: oneDecimal(90 + p.rng.Float64()*9),
			Scale:      analysis.ScalePercent,
			Details:    safeDetails,
		}
	}

	return &analysis.Verdict{
		Label:      "SCAM",
		Confidence: oneDecimal(75 + p.rng.Float64()*20),
		Scale:      analysis.ScalePercent,
		Details:    scamDetails,
	}
}

// oneDecimal rounds v to one decimal place
func oneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
