package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GenerationParams are the per-call generation knobs. Timeout is a hard
// ceiling on the whole round-trip.
type GenerationParams struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Completer is the single-call completion capability the scorer and
// synthesizer depend on.
type Completer interface {
	Complete(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// Client talks to an OpenAI-compatible chat completion endpoint (LM Studio,
// OpenRouter, etc.). It performs exactly one POST per call and never
// retries; retry-or-fallback policy belongs to callers.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{},
	}
}

func (c *Client) Complete(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	body := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": params.Temperature,
		"max_tokens":  params.MaxTokens,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: API returned status %d", ErrUpstreamError, resp.StatusCode)
	}

	var res map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrMalformedResponse, err)
	}

	return extractMessageContent(res)
}

// extractMessageContent pulls choices[0].message.content out of a decoded
// completion response.
func extractMessageContent(res map[string]interface{}) (string, error) {
	choices, ok := res["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	choice, ok := choices[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: invalid choice format", ErrMalformedResponse)
	}

	message, ok := choice["message"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: no message in choice", ErrMalformedResponse)
	}

	content, ok := message["content"].(string)
	if !ok {
		return "", fmt.Errorf("%w: no content in message", ErrMalformedResponse)
	}

	return content, nil
}
