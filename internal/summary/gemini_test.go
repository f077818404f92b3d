package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/resilience"
)

func newGeminiServer(t *testing.T, status int, body string, gotPrompt *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var req generateRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && gotPrompt != nil {
			*gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string) *GeminiClient {
	return NewGeminiClient(Config{
		APIKey:  "k",
		Model:   "test-model",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Breaker: resilience.BreakerConfig{FailureThreshold: 3, OpenTimeout: time.Minute},
	})
}

func TestPrompt(t *testing.T) {
	assert.Equal(t,
		`Summarize the book "1984" by George Orwell in 5 sentences or less. If you dont know the book, return the word "missing" and only this word`,
		Prompt("1984", "George Orwell"))
}

func TestSummarize(t *testing.T) {
	var prompt string
	server := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"A man rebels "},{"text":"against Big Brother.\n"}]}}]}`, &prompt)

	got := newTestClient(server.URL).Summarize(context.Background(), "1984", "George Orwell")

	assert.Equal(t, "A man rebels against Big Brother.", got.String())
	assert.False(t, got.Missing)
	assert.Equal(t, Prompt("1984", "George Orwell"), prompt)
}

func TestSummarize_MissingCases(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"model does not know the book", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"missing"}]}}]}`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"server error", http.StatusInternalServerError, `{}`},
		{"garbage body", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newGeminiServer(t, tt.status, tt.body, nil)
			got := newTestClient(server.URL).Summarize(context.Background(), "Unknown", "Nobody")
			assert.True(t, got.Missing)
		})
	}
}

func TestGenerate_NoAPIKey(t *testing.T) {
	client := NewGeminiClient(Config{})
	_, err := client.Generate(context.Background(), "hello")
	require.ErrorIs(t, err, ErrNoAPIKey)
	assert.True(t, client.Summarize(context.Background(), "t", "a").Missing)
}
