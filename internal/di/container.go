package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/mikey/llm-email-triage/internal/factory"
	"github.com/mikey/llm-email-triage/internal/logging"
	"github.com/mikey/llm-email-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	return provideAll(container)
}

// BuildContainerWithConfig uses an already built configuration
func BuildContainerWithConfig(cfg *config.Config) (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}

	return provideAll(container)
}

func provideAll(container *dig.Container) (*dig.Container, error) {
	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSinkFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register message source
	if err := container.Provide(func(f *factory.SourceFactory) (core.MessageSource, error) {
		return f.CreateMessageSource()
	}); err != nil {
		return nil, err
	}

	// Register notification sink
	if err := container.Provide(func(f *factory.SinkFactory) (core.Sink, error) {
		return f.CreateSink()
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register pipeline stages
	if err := container.Provide(core.NewClassifier); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config, llmClient core.LLMClient, logger *zap.Logger) *core.Summarizer {
		keepWarm := cfg.GetLLM().Provider == "ollama" && cfg.GetOllama().KeepAlive
		return core.NewSummarizer(llmClient, logger, keepWarm)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.SinkFactory, sink core.Sink, logger *zap.Logger) *core.Notifier {
		return core.NewNotifier(sink, logger, f.NotifierOptions())
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		cfg *config.Config,
		classifier *core.Classifier,
		summarizer *core.Summarizer,
		notifier *core.Notifier,
		textProcessor *utils.TextProcessor,
		logger *zap.Logger,
	) *core.TriageService {
		return core.NewTriageService(classifier, summarizer, notifier, textProcessor, cfg.GetLLM().MaxBodySize, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
