package di

import (
	"testing"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/mikey/llm-email-triage/internal/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainer_ResolvesPipeline(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("logging.level", "error")
	container, err := BuildContainerWithConfig(config.NewFromViper(v))
	require.NoError(t, err)

	err = container.Invoke(func(
		svc *core.TriageService,
		source core.MessageSource,
		llmClient core.LLMClient,
		llmFactory *factory.LLMFactory,
	) {
		assert.NotNil(t, svc)
		assert.NotNil(t, source)
		assert.NotNil(t, llmClient)
		assert.Equal(t, "gemma3:1b", llmFactory.Model())
	})
	require.NoError(t, err)
}

func TestBuildContainer_UnsupportedProvider(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("llm.provider", "anthropic")
	container, err := BuildContainerWithConfig(config.NewFromViper(v))
	require.NoError(t, err)

	err = container.Invoke(func(svc *core.TriageService) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
