package factory

import (
	"fmt"

	"github.com/mikey/llm-email-triage/internal/adapters/mailbox"
	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"go.uber.org/zap"
)

// SourceFactory creates message sources
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new SourceFactory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMessageSource creates the source selected by source.type
func (f *SourceFactory) CreateMessageSource() (core.MessageSource, error) {
	switch sourceType := f.cfg.GetSource().Type; sourceType {
	case "static":
		f.logger.Info("Using static sample inbox")
		return mailbox.NewStaticSource(), nil
	case "imap":
		imapCfg := f.cfg.GetIMAP()
		if imapCfg.Host == "" {
			return nil, fmt.Errorf("imap.host is required for the imap source")
		}
		f.logger.Info("Using IMAP mailbox",
			zap.String("host", imapCfg.Host),
			zap.String("mailbox", imapCfg.Mailbox))
		return mailbox.NewIMAPSource(imapCfg, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}
