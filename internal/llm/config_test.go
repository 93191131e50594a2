package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, 60*time.Second, config.Timeout)
	assert.True(t, config.Breaker.Enabled)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "fallback-model"}}

	assert.Equal(t, "fallback-model", config.GetModel(TierAdvanced))
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierStandard: ""}}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "custom-model", custom.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", custom.GetModel(TierLite))
	assert.Equal(t, config.Timeout, custom.Timeout)
}
