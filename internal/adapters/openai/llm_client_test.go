package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewFactory(config.OpenAIConfig{
		BaseURL:     srv.URL + "/v1",
		ModelName:   "gemma3:1b",
		MaxTokens:   64,
		Temperature: 0.1,
	}, config.LLMConfig{}, zap.NewNop()).CreateLLMClient()
	require.NoError(t, err)
	return client
}

func TestOpenAIClient_Generate(t *testing.T) {
	var got openai.ChatCompletionRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","model":"gemma3:1b",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Work"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":10,"completion_tokens":1,"total_tokens":11}}`))
	})
	client := newTestClient(t, mux)

	out, err := client.Generate(context.Background(), core.GenerateRequest{Prompt: "Categorize this"})
	require.NoError(t, err)
	assert.Equal(t, "Work", out)

	assert.Equal(t, "gemma3:1b", got.Model)
	assert.Equal(t, 64, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[1].Role)
	assert.Equal(t, "Categorize this", got.Messages[1].Content)
}

func TestOpenAIClient_GenerateNoChoices(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-2","choices":[]}`))
	})
	client := newTestClient(t, mux)

	_, err := client.Generate(context.Background(), core.GenerateRequest{Prompt: "x"})
	assert.Error(t, err)
}

func TestOpenAIClient_GenerateServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"model crashed","type":"server_error"}}`))
	})
	client := newTestClient(t, mux)

	_, err := client.Generate(context.Background(), core.GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model crashed")
}

func TestOpenAIClient_ListModels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gemma3:1b","object":"model"},{"id":"qwen2.5:3b","object":"model"}]}`))
	})
	client := newTestClient(t, mux)

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemma3:1b", "qwen2.5:3b"}, models)
}
