package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.GetLLM().Provider)
	assert.Equal(t, 4096, cfg.GetLLM().MaxBodySize)
	assert.Equal(t, time.Duration(0), cfg.GetLLM().Timeout)
	assert.Equal(t, "gemma3:1b", cfg.GetOllama().Model)
	assert.True(t, cfg.GetOllama().KeepAlive)
	assert.Equal(t, "us-east-1", cfg.GetBedrock().Region)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", cfg.GetBedrock().ModelID)
	assert.Equal(t, "static", cfg.GetSource().Type)
	assert.Equal(t, "INBOX", cfg.GetIMAP().Mailbox)

	notify := cfg.GetNotify()
	assert.Equal(t, WebhookPlaceholder, notify.WebhookURL)
	assert.Equal(t, "Ollama Email Monitor", notify.Username)
	assert.Equal(t, 200, notify.ExcerptLength)
	assert.False(t, notify.Configured())
}

func TestNew_LegacyEnvironment(t *testing.T) {
	t.Setenv("OLLAMA_REMOTE_HOST", "http://10.0.0.2:11434")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/abc")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.2:11434", cfg.GetOllama().Host)
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.GetNotify().WebhookURL)
	assert.True(t, cfg.GetNotify().Configured())
}

func TestNew_PrefixedEnvironment(t *testing.T) {
	t.Setenv("EMAIL_TRIAGE_SOURCE_TYPE", "imap")
	t.Setenv("EMAIL_TRIAGE_IMAP_LIMIT", "25")
	t.Setenv("EMAIL_TRIAGE_LLM_TIMEOUT", "30s")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "imap", cfg.GetSource().Type)
	assert.Equal(t, 25, cfg.GetIMAP().Limit)
	assert.Equal(t, 30*time.Second, cfg.GetLLM().Timeout)
}

func TestNew_InvalidTimeout(t *testing.T) {
	t.Setenv("EMAIL_TRIAGE_NOTIFY_TIMEOUT", "soon")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notify.timeout")
}

func TestNotifyConfig_Configured(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "placeholder", url: WebhookPlaceholder, want: false},
		{name: "empty", url: "", want: false},
		{name: "real url", url: "https://example.com/hook", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NotifyConfig{WebhookURL: tt.url}.Configured())
		})
	}
}

func TestConfig_FromEnvironment(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.False(t, cfg.FromEnvironment("ollama.host"))

	t.Setenv("OLLAMA_REMOTE_HOST", "http://localhost:11434")
	assert.True(t, cfg.FromEnvironment("ollama.host"))
}

func TestConfig_FromEnvironmentPrefixed(t *testing.T) {
	t.Setenv("EMAIL_TRIAGE_IMAP_HOST", "mail.example.com")

	cfg, err := New()
	require.NoError(t, err)
	assert.True(t, cfg.FromEnvironment("imap.host"))
	assert.False(t, cfg.FromEnvironment("imap.port"))
}
