package core

import (
	"context"
)

// LLMClient defines the interface for interacting with an inference backend
type LLMClient interface {
	// Generate returns the completion for a single prompt
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// ListModels returns the model names available on the backend
	ListModels(ctx context.Context) ([]string, error)
}

// MessageSource yields the next batch of emails to triage
type MessageSource interface {
	Fetch(ctx context.Context) ([]*Email, error)
}

// Sink delivers a notification payload
type Sink interface {
	Send(ctx context.Context, payload *Payload) error
}
