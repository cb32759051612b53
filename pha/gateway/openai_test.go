package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIGateway_Validation(t *testing.T) {
	logger := zerolog.Nop()

	_, err := NewOpenAIGateway(Config{DefaultModel: "m"}, logger)
	assert.Error(t, err)

	_, err = NewOpenAIGateway(Config{APIKey: "k"}, logger)
	assert.Error(t, err)

	gw, err := NewOpenAIGateway(Config{APIKey: "k", DefaultModel: "m", MaxTokens: 1024}, logger)
	require.NoError(t, err)
	assert.NotNil(t, gw)
}

// TestComplete_Success runs a completion against a local compatible endpoint.
func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "test-model",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "Hello there."}, "finish_reason": "stop"}
			],
			"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
		}`))
	}))
	defer server.Close()

	gw, err := NewOpenAIGateway(Config{
		BaseURL:      server.URL + "/v1",
		APIKey:       "test-key",
		DefaultModel: "test-model",
		MaxTokens:    256,
	}, zerolog.Nop())
	require.NoError(t, err)

	text, err := gw.Complete(context.Background(), "You are helpful.", "Say hello.", Options{Temperature: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", text)
}

// TestComplete_BackendFailure verifies failures become text, not errors.
func TestComplete_BackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	gw, err := NewOpenAIGateway(Config{
		BaseURL:      server.URL + "/v1",
		APIKey:       "test-key",
		DefaultModel: "test-model",
		MaxTokens:    256,
	}, zerolog.Nop())
	require.NoError(t, err)

	text, err := gw.Complete(context.Background(), "sys", "user", Options{Temperature: 0.2})
	require.NoError(t, err)
	assert.Contains(t, text, "An error occurred")
}
