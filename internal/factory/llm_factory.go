package factory

import (
	"fmt"

	"github.com/mikey/llm-email-triage/internal/adapters/bedrock"
	"github.com/mikey/llm-email-triage/internal/adapters/gemini"
	"github.com/mikey/llm-email-triage/internal/adapters/ollama"
	"github.com/mikey/llm-email-triage/internal/adapters/openai"
	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"go.uber.org/zap"
)

// LLMFactory creates LLM clients
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLLMClient creates a new LLM client based on the configuration
func (f *LLMFactory) CreateLLMClient() (core.LLMClient, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "ollama":
		return ollama.NewFactory(f.cfg.GetOllama(), llmConfig, f.logger).CreateLLMClient()
	case "openai":
		return openai.NewFactory(f.cfg.GetOpenAI(), llmConfig, f.logger).CreateLLMClient()
	case "gemini":
		return gemini.NewFactory(f.cfg.GetGemini(), f.logger).CreateLLMClient()
	case "bedrock":
		return bedrock.NewFactory(f.cfg.GetBedrock(), llmConfig, f.logger).CreateLLMClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}

// Backend returns a printable name for the configured inference backend
func (f *LLMFactory) Backend() string {
	switch f.cfg.GetLLM().Provider {
	case "ollama":
		return f.cfg.GetOllama().Host
	case "openai":
		return f.cfg.GetOpenAI().BaseURL
	case "bedrock":
		return "bedrock/" + f.cfg.GetBedrock().Region
	default:
		return f.cfg.GetLLM().Provider
	}
}

// Model returns the model name of the configured provider
func (f *LLMFactory) Model() string {
	switch f.cfg.GetLLM().Provider {
	case "ollama":
		return f.cfg.GetOllama().Model
	case "openai":
		return f.cfg.GetOpenAI().ModelName
	case "gemini":
		return f.cfg.GetGemini().ModelName
	case "bedrock":
		return f.cfg.GetBedrock().ModelID
	default:
		return ""
	}
}
