package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// WebhookPlaceholder is the default webhook URL. A sink configured with it
// is treated as not configured and runs in dry-run mode.
const WebhookPlaceholder = "YOUR_DISCORD_WEBHOOK_URL_HERE"

const envPrefix = "EMAIL_TRIAGE"

// Legacy variable names
var legacyEnv = map[string]string{
	"ollama.host":        "OLLAMA_REMOTE_HOST",
	"notify.webhook_url": "DISCORD_WEBHOOK_URL",
}

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance from defaults and the environment
func New() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, envName(key), legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	cfg := &Config{v: v}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.max_body_size", 4096)
	v.SetDefault("llm.timeout", "0s")

	// Ollama defaults
	v.SetDefault("ollama.host", "http://192.168.1.15:11434")
	v.SetDefault("ollama.model", "gemma3:1b")
	v.SetDefault("ollama.keep_alive", true)

	// OpenAI-compatible defaults
	v.SetDefault("openai.base_url", "http://localhost:11434/v1")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gemma3:1b")
	v.SetDefault("openai.max_tokens", 256)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-1.5-flash")
	v.SetDefault("gemini.max_tokens", 256)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.top_p", 0.9)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.profile", "")
	v.SetDefault("bedrock.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("bedrock.max_tokens", 256)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.top_p", 0.9)

	// Source defaults
	v.SetDefault("source.type", "static")
	v.SetDefault("imap.host", "imap.gmail.com")
	v.SetDefault("imap.port", 993)
	v.SetDefault("imap.tls", true)
	v.SetDefault("imap.username", "")
	v.SetDefault("imap.password", "")
	v.SetDefault("imap.mailbox", "INBOX")
	v.SetDefault("imap.limit", 10)
	v.SetDefault("imap.unseen_only", true)

	// Notification defaults
	v.SetDefault("notify.driver", "webhook")
	v.SetDefault("notify.webhook_url", WebhookPlaceholder)
	v.SetDefault("notify.username", "Ollama Email Monitor")
	v.SetDefault("notify.avatar_url", "https://placehold.co/128x128/000000/FFFFFF?text=OM")
	v.SetDefault("notify.excerpt_length", 200)
	v.SetDefault("notify.timeout", "0s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// validate checks the values that would otherwise only fail deep inside a stage
func (c *Config) validate() error {
	for _, key := range []string{"llm.timeout", "notify.timeout"} {
		if _, err := c.GetDuration(key); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	if c.GetInt("notify.excerpt_length") < 0 {
		return fmt.Errorf("notify.excerpt_length must not be negative")
	}
	return nil
}

// FromEnvironment reports whether key was set through an environment
// variable rather than left at its default
func (c *Config) FromEnvironment(key string) bool {
	if _, ok := os.LookupEnv(envName(key)); ok {
		return true
	}
	if legacy, ok := legacyEnv[key]; ok {
		if _, ok := os.LookupEnv(legacy); ok {
			return true
		}
	}
	return false
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
