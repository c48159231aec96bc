package ollama

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/yildizm/go-promptfmt"
	"github.com/yildizm/phishscan/internal/analysis"
)

// Provider classifies messages with a local Ollama model
type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// New creates a new Ollama provider instance
func New(config *Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, analysis.NewConfigurationError(analysis.ProviderOllama, "base_url", "invalid base URL: "+config.BaseURL)
	}

	// /api/... paths are appended to the host root
	baseURL.Path = ""

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return analysis.ProviderOllama
}

// Classify asks the model for a JSON verdict
func (p *Provider) Classify(ctx context.Context, message string) (*analysis.Verdict, error) {
	prompt := NewPhishingPattern(message).Build()

	req := &GenerateRequest{
		Model:  p.config.Model,
		Prompt: prompt.String(),
		System: prompt.SystemPrompt,
		Format: "json",
		Stream: false,
		Options: &Options{
			Temperature: p.config.Temperature,
			NumPredict:  p.config.MaxTokens,
		},
	}

	var resp GenerateResponse
	endpoint := p.baseURL.JoinPath("/api/generate").String()
	if err := analysis.PostJSON(ctx, p.client, p.Name(), endpoint, nil, req, &resp); err != nil {
		return nil, err
	}

	if strings.TrimSpace(resp.Response) == "" {
		return nil, analysis.NewMalformedResponseError(p.Name(), "response", "model returned no text", nil)
	}

	var verdict ModelVerdict
	parseResult := promptfmt.NewResponse(resp.Response).TryParseJSON(&verdict)
	if !parseResult.Success {
		return nil, analysis.NewMalformedResponseError(p.Name(), "response", "model answer is not the expected JSON", nil)
	}

	if verdict.Classification == "" {
		return nil, analysis.NewMalformedResponseError(p.Name(), "classification", "missing classification", nil)
	}
	if verdict.Confidence == nil {
		return nil, analysis.NewMalformedResponseError(p.Name(), "confidence", "missing confidence", nil)
	}

	return &analysis.Verdict{
		Label:      verdict.Classification,
		Confidence: *verdict.Confidence,
		Scale:      analysis.ScaleAuto,
		Details:    verdict.Explanation,
	}, nil
}

// HealthCheck verifies the Ollama daemon answers and the model is pulled
func (p *Provider) HealthCheck(ctx context.Context) error {
	models, err := p.ListModels(ctx)
	if err != nil {
		return err
	}

	for _, model := range models {
		if model.Name == p.config.Model || strings.HasPrefix(model.Name, p.config.Model+":") {
			return nil
		}
	}

	return analysis.NewConfigurationError(p.Name(), "model", "model '"+p.config.Model+"' is not available locally")
}

// ListModels returns available models
func (p *Provider) ListModels(ctx context.Context) ([]Model, error) {
	var tags TagsResponse
	if err := analysis.GetJSON(ctx, p.client, p.Name(), p.baseURL.JoinPath("/api/tags").String(), &tags); err != nil {
		return nil, err
	}
	return tags.Models, nil
}
