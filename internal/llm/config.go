// Package llm wraps the structured extraction oracle: provider clients, model tiers,
// prompt construction and repair of the JSON the oracle returns.
package llm

import "time"

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for short structured parses such as search queries
	TierLite ModelTier = "lite"
	// TierStandard is for full resume extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or noisy documents
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the oracle
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// Timeout bounds a single oracle call; zero leaves the caller's deadline in charge
	Timeout time.Duration
	Breaker BreakerConfig
}

// BreakerConfig controls the circuit breaker placed in front of the oracle
type BreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.1,
		Timeout:     60 * time.Second,
		Breaker:     DefaultBreakerConfig(),
	}
}

// DefaultBreakerConfig trips after 60% failures over at least 5 calls and probes again after 30s
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 0.6,
	}
}

// GetModel returns the model name for a tier, falling back to standard then lite
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with model set for tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	clone := *c
	clone.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		clone.Models[k] = v
	}
	clone.Models[tier] = model
	return &clone
}
