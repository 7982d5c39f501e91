// Package gemini implements the Google Gemini generateContent provider.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mandalnilabja/promptrelay/internal/provider"
	"github.com/mandalnilabja/promptrelay/internal/types"
)

// Options configures a Client.
type Options struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	Model      string

	// Timeout bounds the whole upstream call. Ignored when HTTPClient is set.
	Timeout time.Duration

	HTTPClient *http.Client
}

// Client implements provider.Provider for Gemini.
// The API key is fixed at construction and only ever placed in the outbound URL.
type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	model      string
	httpClient *http.Client
}

// New creates a Gemini client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		apiVersion: opts.APIVersion,
		model:      opts.Model,
		httpClient: httpClient,
	}
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "gemini"
}

// Model returns the configured model ID.
func (c *Client) Model() string {
	return c.model
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GenerateContent posts the prompt to models/{model}:generateContent and
// returns the upstream body untouched when it is a 2xx JSON document.
func (c *Client) GenerateContent(ctx context.Context, req *types.RelayRequest) (*provider.Result, error) {
	startTime := time.Now()
	result := &provider.Result{Model: c.model}

	if !c.Configured() {
		return result, provider.ErrNoAPIKey
	}

	targetURL, err := buildTargetURL(c.baseURL, c.apiVersion, c.model, c.apiKey)
	if err != nil {
		return result, err
	}

	body, err := encodePayload(types.NewGenerateContentRequest(req))
	if err != nil {
		return result, fmt.Errorf("failed to encode payload: %w", err)
	}

	upstreamReq, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, body)
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", redactError(err))
	}
	upstreamReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(upstreamReq)
	if err != nil {
		result.Duration = time.Since(startTime)
		return result, redactError(err)
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	respBody, err := io.ReadAll(resp.Body)
	result.Duration = time.Since(startTime)
	if err != nil {
		return result, fmt.Errorf("failed to read response: %w", redactError(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &provider.UpstreamError{StatusCode: resp.StatusCode, Body: respBody}
	}

	if !json.Valid(respBody) {
		return result, provider.ErrMalformedResponse
	}

	result.Body = respBody
	return result, nil
}

// encodePayload marshals the payload without HTML escaping so prompt text
// reaches the upstream byte-for-byte.
func encodePayload(payload *types.GenerateContentRequest) (io.Reader, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return &buf, nil
}
