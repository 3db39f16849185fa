package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnthropicService(baseURL string) *AnthropicService {
	return &AnthropicService{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(5 * time.Second),
		apiKey: "test-key",
		model:  "claude-sonnet-4-6",
	}
}

func TestAnthropicComplete(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": [{"type": "text", "text": "{\"match_quality\": \"perfect\"}"}],
			"usage": {"input_tokens": 150, "output_tokens": 80}
		}`))
	}))
	defer srv.Close()

	completion, err := testAnthropicService(srv.URL).Complete(context.Background(), "score this job", 1024)

	require.NoError(t, err)
	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "claude-sonnet-4-6", gotBody["model"])
	assert.Equal(t, float64(1024), gotBody["max_tokens"])
	assert.Equal(t, `{"match_quality": "perfect"}`, completion.Text)
	assert.Equal(t, 150, completion.InputTokens)
	assert.Equal(t, 80, completion.OutputTokens)
	assert.Equal(t, "claude-sonnet-4-6", completion.Model)
}

func TestAnthropicCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer srv.Close()

	_, err := testAnthropicService(srv.URL).Complete(context.Background(), "p", 100)

	var completionErr *CompletionError
	require.ErrorAs(t, err, &completionErr)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestAnthropicCompleteEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": [], "usage": {"input_tokens": 1, "output_tokens": 0}}`))
	}))
	defer srv.Close()

	_, err := testAnthropicService(srv.URL).Complete(context.Background(), "p", 100)

	var completionErr *CompletionError
	assert.ErrorAs(t, err, &completionErr)
}
