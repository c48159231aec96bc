package flask

import (
	"context"
	"net/http"

	"github.com/yildizm/phishscan/internal/analysis"
)

// Provider talks to the Flask backend at /api/analyze
type Provider struct {
	endpoint  string
	healthURL string
	client    *http.Client
}

// New creates a new Flask provider instance
func New(config *analysis.Config) (*Provider, error) {
	if config.EndpointURL == "" {
		return nil, analysis.NewConfigurationError(analysis.ProviderFlask, "endpoint_url", "endpoint URL is required")
	}

	healthURL, err := analysis.SiblingURL(config.EndpointURL, "health")
	if err != nil {
		return nil, analysis.NewConfigurationError(analysis.ProviderFlask, "endpoint_url", "invalid endpoint URL: "+err.Error())
	}

	return &Provider{
		endpoint:  config.EndpointURL,
		healthURL: healthURL,
		client:    &http.Client{Timeout: config.RequestTimeout},
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return analysis.ProviderFlask
}

// Classify posts {"text": ...}; confidence comes back as a fraction
func (p *Provider) Classify(ctx context.Context, message string) (*analysis.Verdict, error) {
	var resp AnalyzeResponse
	if err := analysis.PostJSON(ctx, p.client, p.Name(), p.endpoint, nil, &AnalyzeRequest{Text: message}, &resp); err != nil {
		return nil, err
	}

	var label string
	switch {
	case resp.Classification != nil:
		label = *resp.Classification
	case resp.IsPhishing != nil && *resp.IsPhishing:
		label = analysis.ClassificationPhishing.String()
	case resp.IsPhishing != nil:
		label = analysis.ClassificationSafe.String()
	default:
		return nil, analysis.NewMalformedResponseError(p.Name(), "is_phishing", "missing verdict", nil)
	}

	if resp.Confidence == nil {
		return nil, analysis.NewMalformedResponseError(p.Name(), "confidence", "missing confidence", nil)
	}

	return &analysis.Verdict{
		Label:      label,
		Confidence: *resp.Confidence,
		Scale:      analysis.ScaleFraction,
		Details:    resp.Message,
	}, nil
}

// HealthCheck calls /api/health
func (p *Provider) HealthCheck(ctx context.Context) error {
	return analysis.GetStatus(ctx, p.client, p.Name(), p.healthURL)
}
