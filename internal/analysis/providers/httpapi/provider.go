package httpapi

import (
	"context"
	"net/http"

	"github.com/yildizm/phishscan/internal/analysis"
)

// Provider talks to a generic JSON classification endpoint
type Provider struct {
	endpoint  string
	healthURL string
	apiKey    string
	client    *http.Client
}

// New creates a new HTTP provider instance
func New(config *analysis.Config) (*Provider, error) {
	if config.EndpointURL == "" {
		return nil, analysis.NewConfigurationError(analysis.ProviderHTTP, "endpoint_url", "endpoint URL is required")
	}

	healthURL, err := analysis.SiblingURL(config.EndpointURL, "health")
	if err != nil {
		return nil, analysis.NewConfigurationError(analysis.ProviderHTTP, "endpoint_url", "invalid endpoint URL: "+err.Error())
	}

	return &Provider{
		endpoint:  config.EndpointURL,
		healthURL: healthURL,
		apiKey:    config.APIKey,
		client:    &http.Client{Timeout: config.RequestTimeout},
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return analysis.ProviderHTTP
}

// Classify posts {"message": ...} and reads the verdict fields
func (p *Provider) Classify(ctx context.Context, message string) (*analysis.Verdict, error) {
	var headers map[string]string
	if p.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + p.apiKey}
	}

	var resp AnalyzeResponse
	if err := analysis.PostJSON(ctx, p.client, p.Name(), p.endpoint, headers, &AnalyzeRequest{Message: message}, &resp); err != nil {
		return nil, err
	}

	label, ok := firstString(resp.Classification, resp.Label)
	if !ok {
		return nil, analysis.NewMalformedResponseError(p.Name(), "classification", "missing classification", nil)
	}

	confidence, ok := firstFloat(resp.Confidence, resp.Score)
	if !ok {
		return nil, analysis.NewMalformedResponseError(p.Name(), "confidence", "missing confidence", nil)
	}

	details, _ := firstString(resp.Details, resp.Explanation, resp.Message)

	return &analysis.Verdict{
		Label:      label,
		Confidence: confidence,
		Scale:      analysis.ScaleAuto,
		Details:    details,
	}, nil
}

// HealthCheck probes the health path next to the analyze endpoint
func (p *Provider) HealthCheck(ctx context.Context) error {
	return analysis.GetStatus(ctx, p.client, p.Name(), p.healthURL)
}
