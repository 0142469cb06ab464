package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleverai/api/internal/config"
	"cleverai/api/internal/models"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenAIClient(config.OpenAIConfig{
		APIKey:      "sk-test",
		BaseURL:     srv.URL + "/v1",
		Model:       "gpt-4o",
		Temperature: 0.7,
		MaxTokens:   1000,
		Timeout:     5 * time.Second,
	})
}

func TestOpenAIClientComplete(t *testing.T) {
	var got capturedRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "Hello from the model"}, "finish_reason": "stop"},
				{"index": 1, "message": {"role": "assistant", "content": "second"}, "finish_reason": "stop"}
			]
		}`))
	})

	text, err := client.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleSystem, Content: "be brief"},
		{Role: models.ChatRoleUser, Content: "hi"},
		{Role: models.ChatRoleAssistant, Content: "hello"},
		{Role: models.ChatRoleUser, Content: "how are you"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello from the model", text)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "how are you", got.Messages[3].Content)
}

func TestOpenAIClientAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	})

	_, err := client.Complete(context.Background(), []models.ChatMessage{{Role: models.ChatRoleUser, Content: "hi"}})
	require.Error(t, err)

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "Incorrect API key provided", providerErr.Message)
}

func TestOpenAIClientNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	})

	_, err := client.Complete(context.Background(), []models.ChatMessage{{Role: models.ChatRoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, errNoChoices)
}
