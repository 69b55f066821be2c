package openai

import (
	"fmt"
	"net/http"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Factory creates new instances of OpenAIClient
type Factory struct {
	cfg    config.OpenAIConfig
	llmCfg config.LLMConfig
	logger *zap.Logger
}

// NewFactory creates a new factory for OpenAIClient instances
func NewFactory(cfg config.OpenAIConfig, llmCfg config.LLMConfig, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		llmCfg: llmCfg,
		logger: logger,
	}
}

// CreateLLMClient creates a new OpenAIClient. Local servers usually accept
// any API key, so an empty one is allowed.
func (f *Factory) CreateLLMClient() (*OpenAIClient, error) {
	if f.cfg.BaseURL == "" {
		return nil, fmt.Errorf("openai base URL is required")
	}

	clientCfg := openai.DefaultConfig(f.cfg.APIKey)
	clientCfg.BaseURL = f.cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: f.llmCfg.Timeout}

	return NewOpenAIClient(
		openai.NewClientWithConfig(clientCfg),
		f.cfg.ModelName,
		f.cfg.MaxTokens,
		f.cfg.Temperature,
		f.cfg.TopP,
		f.logger,
	), nil
}
