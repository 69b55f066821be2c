package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const summarizePromptFormat = "Summarize the following email content concisely, in one or two sentences. " +
	"Focus on the main point and key details.\n\nEmail Content: %s"

// Summarizer produces a one or two sentence summary of an email body
type Summarizer struct {
	llmClient LLMClient
	logger    *zap.Logger
	keepWarm  bool
}

// NewSummarizer creates a new summarizer stage. With keepWarm set the
// backend is asked to keep the model loaded between messages.
func NewSummarizer(llmClient LLMClient, logger *zap.Logger, keepWarm bool) *Summarizer {
	return &Summarizer{
		llmClient: llmClient,
		logger:    logger,
		keepWarm:  keepWarm,
	}
}

// Summarize returns a non-empty summary, or SummaryUnavailable on failure
func (s *Summarizer) Summarize(ctx context.Context, body string) string {
	summary, err := s.summarize(ctx, body)
	if err != nil {
		s.logger.Error("Failed to summarize email", zap.Error(err))
		return SummaryUnavailable
	}
	return summary
}

func (s *Summarizer) summarize(ctx context.Context, body string) (string, error) {
	output, err := s.llmClient.Generate(ctx, GenerateRequest{
		Prompt:   fmt.Sprintf(summarizePromptFormat, body),
		KeepWarm: s.keepWarm,
	})
	if err != nil {
		return "", &StageError{Stage: StageSummarize, Err: err}
	}

	summary := strings.TrimSpace(output)
	if summary == "" {
		return "", &StageError{Stage: StageSummarize, Err: ErrEmptyResponse}
	}
	return summary, nil
}
