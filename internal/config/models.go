package config

import "time"

// LLMConfig represents the provider-independent LLM configuration
type LLMConfig struct {
	Provider    string
	MaxBodySize int
	Timeout     time.Duration
}

// OllamaConfig represents the configuration for an Ollama server
type OllamaConfig struct {
	Host      string
	Model     string
	KeepAlive bool
}

// OpenAIConfig represents the configuration for an OpenAI-compatible server
type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	Profile     string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// SourceConfig selects the message source
type SourceConfig struct {
	Type string
}

// IMAPConfig represents the configuration for the IMAP mailbox
type IMAPConfig struct {
	Host       string
	Port       int
	TLS        bool
	Username   string
	Password   string
	Mailbox    string
	Limit      int
	UnseenOnly bool
}

// NotifyConfig represents the configuration for the notification sink
type NotifyConfig struct {
	Driver        string
	WebhookURL    string
	Username      string
	AvatarURL     string
	ExcerptLength int
	Timeout       time.Duration
}

// Configured reports whether a real webhook URL has been provided
func (n NotifyConfig) Configured() bool {
	return n.WebhookURL != "" && n.WebhookURL != WebhookPlaceholder
}

// LoggingConfig represents the logger configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	timeout, _ := c.GetDuration("llm.timeout")
	return LLMConfig{
		Provider:    c.GetString("llm.provider"),
		MaxBodySize: c.GetInt("llm.max_body_size"),
		Timeout:     timeout,
	}
}

// GetOllama returns the Ollama configuration
func (c *Config) GetOllama() OllamaConfig {
	return OllamaConfig{
		Host:      c.GetString("ollama.host"),
		Model:     c.GetString("ollama.model"),
		KeepAlive: c.GetBool("ollama.keep_alive"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		BaseURL:     c.GetString("openai.base_url"),
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Amazon Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		Profile:     c.GetString("bedrock.profile"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetSource returns the message source configuration
func (c *Config) GetSource() SourceConfig {
	return SourceConfig{
		Type: c.GetString("source.type"),
	}
}

// GetIMAP returns the IMAP configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Host:       c.GetString("imap.host"),
		Port:       c.GetInt("imap.port"),
		TLS:        c.GetBool("imap.tls"),
		Username:   c.GetString("imap.username"),
		Password:   c.GetString("imap.password"),
		Mailbox:    c.GetString("imap.mailbox"),
		Limit:      c.GetInt("imap.limit"),
		UnseenOnly: c.GetBool("imap.unseen_only"),
	}
}

// GetNotify returns the notification configuration
func (c *Config) GetNotify() NotifyConfig {
	timeout, _ := c.GetDuration("notify.timeout")
	return NotifyConfig{
		Driver:        c.GetString("notify.driver"),
		WebhookURL:    c.GetString("notify.webhook_url"),
		Username:      c.GetString("notify.username"),
		AvatarURL:     c.GetString("notify.avatar_url"),
		ExcerptLength: c.GetInt("notify.excerpt_length"),
		Timeout:       timeout,
	}
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}
