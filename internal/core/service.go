package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikey/llm-email-triage/internal/utils"
	"go.uber.org/zap"
)

// TriageService is the pipeline driver. It runs every email of a batch
// through classification, summarization and notification, in order.
type TriageService struct {
	classifier    *Classifier
	summarizer    *Summarizer
	notifier      *Notifier
	textProcessor *utils.TextProcessor
	maxBodySize   int
	logger        *zap.Logger
}

// NewTriageService creates a new triage service
func NewTriageService(
	classifier *Classifier,
	summarizer *Summarizer,
	notifier *Notifier,
	textProcessor *utils.TextProcessor,
	maxBodySize int,
	logger *zap.Logger,
) *TriageService {
	return &TriageService{
		classifier:    classifier,
		summarizer:    summarizer,
		notifier:      notifier,
		textProcessor: textProcessor,
		maxBodySize:   maxBodySize,
		logger:        logger,
	}
}

// Run fetches one batch from source and processes it. Only a fetch failure
// or cancellation of ctx is returned; stage failures are absorbed by the stages.
func (s *TriageService) Run(ctx context.Context, source MessageSource) error {
	emails, err := source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch emails: %w", err)
	}

	s.logger.Info("Starting email processing", zap.Int("count", len(emails)))

	for i, email := range emails {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("Email processing interrupted",
				zap.Int("processed", i),
				zap.Int("count", len(emails)))
			return err
		}
		s.process(ctx, i, len(emails), email)
	}

	s.logger.Info("Email processing complete", zap.Int("count", len(emails)))
	return nil
}

func (s *TriageService) process(ctx context.Context, i, total int, email *Email) {
	logger := s.logger.With(
		zap.String("email_id", email.ID),
		zap.Int("index", i+1),
		zap.Int("total", total))
	logger.Info("Processing email", zap.String("subject", email.Subject))

	body := s.textProcessor.ProcessText(email.Body, s.maxBodySize)

	category := s.classifier.Classify(ctx, body)
	logger.Info("Categorized email", zap.String("category", string(category)))

	summary := s.summarizer.Summarize(ctx, body)
	logger.Info("Summarized email", zap.String("summary", summary))

	s.notifier.Notify(ctx, email, category, summary)
}

// CheckConnectivity checks the backend by listing its models. It returns a
// ConnectivityError when the backend cannot be reached.
func CheckConnectivity(ctx context.Context, llmClient LLMClient, backend, model string, logger *zap.Logger) error {
	models, err := llmClient.ListModels(ctx)
	if err != nil {
		return &ConnectivityError{Backend: backend, Err: err}
	}

	logger.Info("Connected to inference backend",
		zap.String("backend", backend),
		zap.Int("models", len(models)))

	for _, name := range models {
		if modelTag(name) == modelTag(model) {
			return nil
		}
	}
	logger.Warn("Configured model is not available on the backend, pull it first",
		zap.String("model", model),
		zap.Strings("available", models))
	return nil
}

// modelTag spells out the implicit :latest tag of an untagged model name
func modelTag(name string) string {
	if strings.Contains(name, ":") {
		return name
	}
	return name + ":latest"
}
