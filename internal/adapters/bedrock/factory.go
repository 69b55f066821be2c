package bedrock

import (
	"context"
	"fmt"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/llm-email-triage/internal/config"
	"go.uber.org/zap"
)

// Factory creates Bedrock clients
type Factory struct {
	cfg    config.BedrockConfig
	llmCfg config.LLMConfig
	logger *zap.Logger
}

// NewFactory creates a new Bedrock factory
func NewFactory(cfg config.BedrockConfig, llmCfg config.LLMConfig, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		llmCfg: llmCfg,
		logger: logger,
	}
}

// CreateLLMClient creates a new Bedrock client. Credentials come from the
// default AWS chain, or from the named shared profile when one is set.
func (f *Factory) CreateLLMClient() (*BedrockClient, error) {
	if f.cfg.Region == "" {
		return nil, fmt.Errorf("bedrock region is required")
	}
	if f.cfg.ModelID == "" {
		return nil, fmt.Errorf("bedrock model id is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(f.cfg.Region),
	}
	if f.cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(f.cfg.Profile))
	}
	if f.llmCfg.Timeout > 0 {
		opts = append(opts, awsconfig.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(f.llmCfg.Timeout)))
	}

	// Load AWS configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewBedrockClient(
		bedrockruntime.NewFromConfig(awsCfg),
		awsbedrock.NewFromConfig(awsCfg),
		f.cfg.ModelID,
		f.cfg.MaxTokens,
		f.cfg.Temperature,
		f.cfg.TopP,
		f.logger,
	), nil
}
