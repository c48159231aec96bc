package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody bounds how much of a non-2xx body is read for its error text
const maxErrorBody = 64 << 10

// errorBody is the optional {"error": "..."} payload of a non-2xx answer
type errorBody struct {
	Error string `json:"error"`
}

// PostJSON sends payload as JSON to endpoint and decodes a 2xx body into out.
// Failures are classified into TransportError and MalformedResponseError.
func PostJSON(ctx context.Context, client *http.Client, provider, endpoint string, headers map[string]string, payload, out any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return NewConfigurationError(provider, "endpoint_url", "invalid endpoint: "+err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(ctx, client, provider, req, out)
}

// GetStatus performs a GET and only checks for a 2xx answer
func GetStatus(ctx context.Context, client *http.Client, provider, endpoint string) error {
	return GetJSON(ctx, client, provider, endpoint, nil)
}

// GetJSON performs a GET and decodes a 2xx body into out, if out is non-nil
func GetJSON(ctx context.Context, client *http.Client, provider, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return NewConfigurationError(provider, "endpoint_url", "invalid endpoint: "+err.Error())
	}
	req.Header.Set("Accept", "application/json")

	return do(ctx, client, provider, req, out)
}

func do(ctx context.Context, client *http.Client, provider string, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		terr := NewTransportError(provider, err)
		terr.Timeout = isTimeout(ctx, err)
		return terr
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		detail := ""
		if json.Unmarshal(body, &eb) == nil {
			detail = eb.Error
		}
		return NewStatusError(provider, resp.StatusCode, detail)
	}

	if out == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := NewTransportError(provider, err)
		terr.Timeout = isTimeout(ctx, err)
		return terr
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return NewMalformedResponseError(provider, "", "empty response body", nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewMalformedResponseError(provider, "", "failed to decode response", err)
	}

	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// SiblingURL resolves name relative to endpoint, so that ".../api/analyze"
// becomes ".../api/health"
func SiblingURL(endpoint, name string) (string, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("endpoint %q is not an absolute URL", endpoint)
	}
	if base.Path == "" || strings.HasSuffix(base.Path, "/") {
		return base.JoinPath(name).String(), nil
	}
	return base.ResolveReference(&url.URL{Path: name}).String(), nil
}
