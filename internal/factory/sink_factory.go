package factory

import (
	"fmt"
	"net/http"

	"github.com/mikey/llm-email-triage/internal/adapters/discord"
	"github.com/mikey/llm-email-triage/internal/adapters/webhook"
	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"go.uber.org/zap"
)

// SinkFactory creates notification sinks
type SinkFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSinkFactory creates a new SinkFactory
func NewSinkFactory(cfg *config.Config, logger *zap.Logger) *SinkFactory {
	return &SinkFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSink creates the sink selected by notify.driver. An unconfigured
// webhook URL yields a plain webhook sink that the notifier never calls.
func (f *SinkFactory) CreateSink() (core.Sink, error) {
	notifyCfg := f.cfg.GetNotify()
	client := &http.Client{Timeout: notifyCfg.Timeout}

	if !notifyCfg.Configured() {
		return webhook.NewSink(notifyCfg.WebhookURL, client, f.logger), nil
	}

	switch notifyCfg.Driver {
	case "webhook":
		return webhook.NewSink(notifyCfg.WebhookURL, client, f.logger), nil
	case "discord":
		return discord.NewSink(notifyCfg.WebhookURL, client, f.logger)
	default:
		return nil, fmt.Errorf("unsupported notify driver: %s", notifyCfg.Driver)
	}
}

// NotifierOptions maps the notify section onto notifier options
func (f *SinkFactory) NotifierOptions() core.NotifierOptions {
	notifyCfg := f.cfg.GetNotify()
	return core.NotifierOptions{
		Username:      notifyCfg.Username,
		AvatarURL:     notifyCfg.AvatarURL,
		ExcerptLength: notifyCfg.ExcerptLength,
		DryRun:        !notifyCfg.Configured(),
	}
}
