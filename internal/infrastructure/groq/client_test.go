package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validContent = `{
	"summary": "Acme builds anvils.",
	"whatTheyDo": ["Heavy anvils", "Custom drops"],
	"keywords": ["anvils", "coyotes"],
	"derivedSignals": ["hiring engineers"],
	"sources": [{"url": "https://acme.io", "fetchedAt": "2024-01-01T00:00:00Z"}]
}`

func stubUpstream(t *testing.T, calls *atomic.Int64, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func envelope(content string) string {
	payload, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(payload)
}

func TestEnrichMissingAPIKeyFailsBeforeAnyRequest(t *testing.T) {
	var calls atomic.Int64
	srv := stubUpstream(t, &calls, http.StatusOK, envelope(validContent))

	client := NewClient("", "", srv.URL)
	_, err := client.Enrich(context.Background(), "Acme", "https://acme.io")

	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, int64(0), calls.Load(), "no network call may be issued without a credential")
}

func TestEnrichSuccess(t *testing.T) {
	var calls atomic.Int64
	srv := stubUpstream(t, &calls, http.StatusOK, envelope(validContent))

	client := NewClient("test-key", "", srv.URL)
	result, err := client.Enrich(context.Background(), "Acme", "https://acme.io")

	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, "Acme builds anvils.", result.Summary)
	assert.Equal(t, []string{"Heavy anvils", "Custom drops"}, result.WhatTheyDo)
	assert.Equal(t, []string{"anvils", "coyotes"}, result.Keywords)
	assert.Equal(t, []string{"hiring engineers"}, result.DerivedSignals)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "https://acme.io", result.Sources[0].URL)
}

func TestEnrichRequestShape(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(envelope(validContent)))
	}))
	t.Cleanup(srv.Close)

	client := NewClient("test-key", "", srv.URL)
	_, err := client.Enrich(context.Background(), "Acme", "https://acme.io")
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, captured.Model)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, systemPrompt, captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "Company: Acme")
	assert.Contains(t, captured.Messages[1].Content, "Website: https://acme.io")
	assert.Contains(t, captured.Messages[1].Content, "Required Format:")
}

func TestEnrichUpstreamErrorCarriesStatusAndBody(t *testing.T) {
	var calls atomic.Int64
	srv := stubUpstream(t, &calls, http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`)

	client := NewClient("test-key", "", srv.URL)
	_, err := client.Enrich(context.Background(), "Acme", "https://acme.io")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Contains(t, upstream.Body, "rate limited")
}

func TestEnrichMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "envelope is not JSON", body: "<html>bad gateway</html>"},
		{name: "no choices", body: `{"choices":[]}`},
		{name: "content is not JSON", body: envelope("Sure! Here is the JSON you asked for:")},
		{
			name: "missing sources",
			body: envelope(`{"summary":"s","whatTheyDo":[],"keywords":[],"derivedSignals":[]}`),
		},
		{
			name: "missing summary",
			body: envelope(`{"whatTheyDo":[],"keywords":[],"derivedSignals":[],"sources":[]}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int64
			srv := stubUpstream(t, &calls, http.StatusOK, tt.body)

			client := NewClient("test-key", "", srv.URL)
			_, err := client.Enrich(context.Background(), "Acme", "https://acme.io")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestEnrichPresentButEmptySlicesAreAccepted(t *testing.T) {
	// The shape contract requires the fields to exist; it does not require
	// them to be non-empty.
	var calls atomic.Int64
	body := envelope(`{"summary":"s","whatTheyDo":[],"keywords":[],"derivedSignals":[],"sources":[]}`)
	srv := stubUpstream(t, &calls, http.StatusOK, body)

	client := NewClient("test-key", "", srv.URL)
	result, err := client.Enrich(context.Background(), "Acme", "https://acme.io")

	require.NoError(t, err)
	assert.Empty(t, result.Sources)
}
