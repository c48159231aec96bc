package huggingface

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yildizm/phishscan/internal/analysis"
)

// Provider calls a hosted text-classification model
type Provider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// New creates a new Hugging Face provider instance
func New(config *analysis.Config) (*Provider, error) {
	if config.EndpointURL == "" {
		return nil, analysis.NewConfigurationError(analysis.ProviderHuggingFace, "endpoint_url", "endpoint URL is required")
	}

	return &Provider{
		endpoint: config.EndpointURL,
		apiKey:   config.APIKey,
		client:   &http.Client{Timeout: config.RequestTimeout},
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return analysis.ProviderHuggingFace
}

// Classify posts {"inputs": ...} and keeps the highest scoring label
func (p *Provider) Classify(ctx context.Context, message string) (*analysis.Verdict, error) {
	headers := map[string]string{}
	if p.apiKey != "" {
		headers["Authorization"] = "Bearer " + p.apiKey
	}

	req := &InferenceRequest{
		Inputs:  message,
		Options: &InferenceOptions{WaitForModel: true},
	}

	var resp InferenceResponse
	if err := analysis.PostJSON(ctx, p.client, p.Name(), p.endpoint, headers, req, &resp); err != nil {
		return nil, err
	}

	best, err := resp.Best()
	if err != nil {
		return nil, analysis.NewMalformedResponseError(p.Name(), "label", "empty classification list", err)
	}

	return &analysis.Verdict{
		Label:      best.Label,
		Confidence: best.Score,
		Scale:      analysis.ScaleFraction,
		Details:    fmt.Sprintf("Model label %s scored %.2f", best.Label, best.Score),
	}, nil
}
