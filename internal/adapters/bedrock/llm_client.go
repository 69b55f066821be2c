package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	runtimetypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/mikey/llm-email-triage/internal/core"
	"go.uber.org/zap"
)

const systemPrompt = "You are an email triage assistant. Answer exactly as instructed."

// RuntimeAPI is the part of the bedrockruntime client used for generation
type RuntimeAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// CatalogAPI is the part of the bedrock control plane client used to list models
type CatalogAPI interface {
	ListFoundationModels(ctx context.Context, params *awsbedrock.ListFoundationModelsInput, optFns ...func(*awsbedrock.Options)) (*awsbedrock.ListFoundationModelsOutput, error)
}

// BedrockClient is an implementation of the LLMClient interface using Amazon Bedrock
type BedrockClient struct {
	runtime     RuntimeAPI
	catalog     CatalogAPI
	modelID     string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewBedrockClient creates a new Bedrock client
func NewBedrockClient(
	runtime RuntimeAPI,
	catalog CatalogAPI,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *BedrockClient {
	return &BedrockClient{
		runtime:     runtime,
		catalog:     catalog,
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

// Generate sends the prompt through the Converse API, which accepts the same
// request shape for every model family
func (c *BedrockClient) Generate(ctx context.Context, req core.GenerateRequest) (string, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.modelID),
		System: []runtimetypes.SystemContentBlock{
			&runtimetypes.SystemContentBlockMemberText{Value: systemPrompt},
		},
		Messages: []runtimetypes.Message{
			{
				Role: runtimetypes.ConversationRoleUser,
				Content: []runtimetypes.ContentBlock{
					&runtimetypes.ContentBlockMemberText{Value: req.Prompt},
				},
			},
		},
		InferenceConfig: &runtimetypes.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(c.maxTokens)),
			Temperature: aws.Float32(c.temperature),
			TopP:        aws.Float32(c.topP),
		},
	}

	resp, err := c.runtime.Converse(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	msg, ok := resp.Output.(*runtimetypes.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("unexpected Bedrock output type %T", resp.Output)
	}

	var out strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*runtimetypes.ContentBlockMemberText); ok {
			out.WriteString(text.Value)
		}
	}

	fields := []zap.Field{
		zap.String("model", c.modelID),
		zap.String("stop_reason", string(resp.StopReason)),
	}
	if resp.Usage != nil {
		fields = append(fields, zap.Int32("total_tokens", aws.ToInt32(resp.Usage.TotalTokens)))
	}
	c.logger.Debug("Bedrock generation complete", fields...)

	return out.String(), nil
}

// ListModels returns the ids of the text foundation models offered in the region
func (c *BedrockClient) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.catalog.ListFoundationModels(ctx, &awsbedrock.ListFoundationModelsInput{
		ByOutputModality: bedrocktypes.ModelModalityText,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list Bedrock models: %w", err)
	}

	ids := make([]string, 0, len(resp.ModelSummaries))
	for _, m := range resp.ModelSummaries {
		ids = append(ids, aws.ToString(m.ModelId))
	}
	return ids, nil
}
