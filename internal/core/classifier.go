package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const classifyPromptFormat = "Categorize the following email content into one of these categories: " +
	"%s. Respond with ONLY the category name.\n\nEmail Content: %s"

// Classifier assigns one taxonomy label to an email body
type Classifier struct {
	llmClient LLMClient
	logger    *zap.Logger
}

// NewClassifier creates a new classifier stage
func NewClassifier(llmClient LLMClient, logger *zap.Logger) *Classifier {
	return &Classifier{
		llmClient: llmClient,
		logger:    logger,
	}
}

// Classify returns the category for body. It falls back to CategoryOther
// on any failure and never returns an error.
func (c *Classifier) Classify(ctx context.Context, body string) Category {
	category, err := c.classify(ctx, body)
	if err == nil {
		return category
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) && errors.Is(stageErr.Err, ErrUnknownCategory) {
		c.logger.Warn("Unexpected category from model, defaulting to Other",
			zap.String("output", stageErr.Output))
	} else {
		c.logger.Warn("Failed to categorize email, defaulting to Other", zap.Error(err))
	}
	return CategoryOther
}

func (c *Classifier) classify(ctx context.Context, body string) (Category, error) {
	names := make([]string, len(Categories))
	for i, category := range Categories {
		names[i] = string(category)
	}
	prompt := fmt.Sprintf(classifyPromptFormat, strings.Join(names, ", "), body)

	output, err := c.llmClient.Generate(ctx, GenerateRequest{Prompt: prompt})
	if err != nil {
		return CategoryOther, &StageError{Stage: StageClassify, Err: err}
	}

	label := normalizeLabel(output)
	category, ok := ParseCategory(label)
	if !ok {
		return CategoryOther, &StageError{Stage: StageClassify, Output: label, Err: ErrUnknownCategory}
	}
	return category, nil
}

// normalizeLabel keeps the first line of the answer without trailing periods
func normalizeLabel(output string) string {
	line := strings.TrimSpace(output)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	line = strings.TrimRight(line, ".")
	return strings.TrimSpace(line)
}
