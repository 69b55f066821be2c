package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// keepLoaded is the keep_alive value that tells Ollama never to unload the model
var keepLoaded = api.Duration{Duration: -1}

// OllamaClient is an implementation of the LLMClient interface using the Ollama API
type OllamaClient struct {
	client *api.Client
	model  string
	logger *zap.Logger
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(client *api.Client, model string, logger *zap.Logger) *OllamaClient {
	return &OllamaClient{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Generate sends a single non-streaming generate request
func (c *OllamaClient) Generate(ctx context.Context, req core.GenerateRequest) (string, error) {
	stream := false
	genReq := &api.GenerateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		Stream: &stream,
	}
	if req.KeepWarm {
		genReq.KeepAlive = &keepLoaded
	}

	var out strings.Builder
	err := c.client.Generate(ctx, genReq, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate with Ollama: %w", err)
	}

	c.logger.Debug("Ollama generation complete",
		zap.String("model", c.model),
		zap.Int("response_size", out.Len()))

	return out.String(), nil
}

// ListModels returns the names of the models pulled on the server
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list Ollama models: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
