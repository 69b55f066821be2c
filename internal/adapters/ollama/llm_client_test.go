package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type generateBody struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	Stream    *bool  `json:"stream"`
	KeepAlive any    `json:"keep_alive"`
}

func newTestClient(t *testing.T, handler http.Handler) *OllamaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewFactory(
		config.OllamaConfig{Host: srv.URL, Model: "gemma3:1b"},
		config.LLMConfig{},
		zap.NewNop(),
	).CreateLLMClient()
	require.NoError(t, err)
	return client
}

func TestOllamaClient_Generate(t *testing.T) {
	var got []generateBody
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		var body generateBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got = append(got, body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gemma3:1b","response":"Promotions\n","done":true}`))
	})
	client := newTestClient(t, mux)

	out, err := client.Generate(context.Background(), core.GenerateRequest{Prompt: "classify me"})
	require.NoError(t, err)
	assert.Equal(t, "Promotions\n", out)

	_, err = client.Generate(context.Background(), core.GenerateRequest{Prompt: "summarize me", KeepWarm: true})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "gemma3:1b", got[0].Model)
	assert.Equal(t, "classify me", got[0].Prompt)
	require.NotNil(t, got[0].Stream)
	assert.False(t, *got[0].Stream)
	assert.Nil(t, got[0].KeepAlive)
	assert.NotNil(t, got[1].KeepAlive)
}

func TestOllamaClient_GenerateError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'gemma3:1b' not found"}`))
	})
	client := newTestClient(t, mux)

	_, err := client.Generate(context.Background(), core.GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOllamaClient_ListModels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"gemma3:1b","model":"gemma3:1b"},{"name":"llama3:8b","model":"llama3:8b"}]}`))
	})
	client := newTestClient(t, mux)

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemma3:1b", "llama3:8b"}, models)
}

func TestOllamaClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewFactory(config.OllamaConfig{Host: url, Model: "gemma3:1b"}, config.LLMConfig{}, zap.NewNop()).CreateLLMClient()
	require.NoError(t, err)

	_, err = client.ListModels(context.Background())
	assert.Error(t, err)
}

func TestFactory_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.OllamaConfig
	}{
		{name: "missing host", cfg: config.OllamaConfig{Host: "http://", Model: "gemma3:1b"}},
		{name: "unsupported scheme", cfg: config.OllamaConfig{Host: "ftp://192.168.1.15", Model: "gemma3:1b"}},
		{name: "missing model", cfg: config.OllamaConfig{Host: "http://localhost:11434"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFactory(tt.cfg, config.LLMConfig{}, zap.NewNop()).CreateLLMClient()
			assert.Error(t, err)
		})
	}
}

func TestParseHost(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "192.168.1.15:11434", want: "http://192.168.1.15:11434"},
		{raw: "192.168.1.15", want: "http://192.168.1.15:11434"},
		{raw: "ollama.lan", want: "http://ollama.lan:11434"},
		{raw: "http://192.168.1.15:11434", want: "http://192.168.1.15:11434"},
		{raw: "http://ollama.lan", want: "http://ollama.lan:80"},
		{raw: "https://ollama.lan", want: "https://ollama.lan:443"},
		{raw: " [::1]:11434 ", want: "http://[::1]:11434"},
		{raw: "https://proxy.lan/ollama", want: "https://proxy.lan:443/ollama"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseHost(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	for _, raw := range []string{"", "http://", "ftp://host", "host:port"} {
		_, err := ParseHost(raw)
		assert.Error(t, err, raw)
	}
}

func TestFactory_HostWithoutScheme(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models": [{"name": "gemma3:1b"}]}`))
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "http://")
	client, err := NewFactory(config.OllamaConfig{Host: host, Model: "gemma3:1b"}, config.LLMConfig{}, zap.NewNop()).CreateLLMClient()
	require.NoError(t, err)

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemma3:1b"}, models)
}
