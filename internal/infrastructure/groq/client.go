package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dealscope/internal/utils"
)

var (
	// ErrMissingAPIKey means the client was built without a credential.
	// Enrich fails with it before any request is sent.
	ErrMissingAPIKey = errors.New("groq api key is not configured")

	// ErrMalformedResponse covers everything between "the provider answered
	// 2xx" and "we hold a usable EnrichmentResult": an undecodable envelope,
	// an empty choice list, message content that is not JSON, or parsed JSON
	// missing required fields.
	ErrMalformedResponse = errors.New("groq returned a malformed response")
)

// UpstreamError is a non-success status from the provider, with the raw
// body preserved for logs.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("groq api failed with status code: %d", e.Status)
}

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"

	// The provider imposes no deadline of its own, so the client does.
	// An expired deadline surfaces as a regular transport error.
	requestTimeout = 30 * time.Second
)

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Enrich asks the model for a structured profile of the company. One
// outbound call per invocation; no retries, no rate limiting.
func (c *Client) Enrich(ctx context.Context, name, website string) (*EnrichmentResult, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	fetchedAt := utils.FormatEpoch(utils.NowUTC())
	payload, err := json.Marshal(&chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(name, website, fetchedAt)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var envelope chatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", ErrMalformedResponse, err)
	}

	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	var result EnrichmentResult
	content := envelope.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("%w: message content is not valid JSON: %v", ErrMalformedResponse, err)
	}

	if err := result.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &result, nil
}
