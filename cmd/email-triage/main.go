package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/mikey/llm-email-triage/internal/di"
	"github.com/mikey/llm-email-triage/internal/factory"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	cfg *config.Config,
	logger *zap.Logger,
	llmFactory *factory.LLMFactory,
	llmClient core.LLMClient,
	source core.MessageSource,
	svc *core.TriageService,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	warnStartup(cfg, logger)

	defer func() {
		if closer, ok := llmClient.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("Failed to close LLM client", zap.Error(err))
			}
		}
	}()

	logger.Info("Connecting to inference backend",
		zap.String("provider", cfg.GetLLM().Provider),
		zap.String("backend", llmFactory.Backend()),
		zap.String("model", llmFactory.Model()))

	if err := core.CheckConnectivity(ctx, llmClient, llmFactory.Backend(), llmFactory.Model(), logger); err != nil {
		logger.Error("Could not connect to inference backend", zap.Error(err))
		return err
	}

	if err := svc.Run(ctx, source); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Shutting down...")
			return nil
		}
		logger.Error("Email processing failed", zap.Error(err))
		return err
	}

	logger.Info("Email processing complete")
	return nil
}

func warnStartup(cfg *config.Config, logger *zap.Logger) {
	if !cfg.GetNotify().Configured() {
		logger.Warn("Webhook URL is not configured, notifications will be skipped",
			zap.String("hint", "set DISCORD_WEBHOOK_URL or EMAIL_TRIAGE_NOTIFY_WEBHOOK_URL"))
	}

	if cfg.GetLLM().Provider != "ollama" || cfg.FromEnvironment("ollama.host") {
		return
	}
	host := cfg.GetOllama().Host
	if strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1") {
		logger.Warn("Ollama host points at this machine, set OLLAMA_REMOTE_HOST to use a remote server",
			zap.String("host", host))
	}
}
