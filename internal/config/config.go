// Package config loads engine configuration from defaults, an optional config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-engine/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_ENGINE_SERVER_PORT
const EnvPrefix = "RESUME_ENGINE"

// Config is the full engine configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int             `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration   `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration   `mapstructure:"write_timeout" validate:"gte=0"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds the per-client request budget
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps" validate:"required_if=Enabled true,gte=0"`
	Burst   int     `mapstructure:"burst" validate:"required_if=Enabled true,gte=0"`
}

// LLMConfig holds oracle settings
type LLMConfig struct {
	Provider string            `mapstructure:"provider" validate:"oneof=gemini"`
	APIKey   string            `mapstructure:"api_key"`
	Models   map[string]string `mapstructure:"models"`
	Timeout  time.Duration     `mapstructure:"timeout" validate:"gte=0"`
	Breaker  BreakerConfig     `mapstructure:"breaker"`
}

// BreakerConfig holds the oracle circuit breaker settings
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval" validate:"gte=0"`
	Timeout          time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold" validate:"gte=0,lte=1"`
}

// BatchConfig holds batch processing settings
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=64"`
}

// TaxonomyConfig points at an optional taxonomy override file
type TaxonomyConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Load reads configuration. An empty path searches for resume_engine.{yaml,json} in the
// working directory and $HOME/.resume_engine; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("resume_engine")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.resume_engine")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration, ignoring files and the environment
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	breaker := llmDefaults.Breaker

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.rps", 5.0)
	v.SetDefault("server.rate_limit.burst", 10)

	v.SetDefault("llm.provider", string(llmDefaults.Provider))
	v.SetDefault("llm.api_key", "")
	for tier, model := range llmDefaults.Models {
		v.SetDefault("llm.models."+string(tier), model)
	}
	v.SetDefault("llm.timeout", llmDefaults.Timeout)
	v.SetDefault("llm.breaker.enabled", breaker.Enabled)
	v.SetDefault("llm.breaker.max_requests", breaker.MaxRequests)
	v.SetDefault("llm.breaker.interval", breaker.Interval)
	v.SetDefault("llm.breaker.timeout", breaker.Timeout)
	v.SetDefault("llm.breaker.min_requests", breaker.MinRequests)
	v.SetDefault("llm.breaker.failure_threshold", breaker.FailureThreshold)

	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("taxonomy.path", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	seen := make(map[string]string, len(c.LLM.Models))
	for _, key := range slices.Sorted(maps.Keys(c.LLM.Models)) {
		tier := strings.ToLower(key)
		if prev, ok := seen[tier]; ok {
			return fmt.Errorf("config error: llm.models keys %q and %q name the same tier", prev, key)
		}
		seen[tier] = key
	}
	return nil
}

// OracleConfig converts the llm section into the oracle client configuration
func (c *Config) OracleConfig() *llm.Config {
	out := llm.DefaultConfig()
	out.Provider = llm.Provider(c.LLM.Provider)
	out.Timeout = c.LLM.Timeout
	// sorted so that keys differing only in case resolve the same way every time
	for _, tier := range slices.Sorted(maps.Keys(c.LLM.Models)) {
		if model := c.LLM.Models[tier]; model != "" {
			out.Models[llm.ModelTier(strings.ToLower(tier))] = model
		}
	}
	out.Breaker = llm.BreakerConfig{
		Enabled:          c.LLM.Breaker.Enabled,
		MaxRequests:      c.LLM.Breaker.MaxRequests,
		Interval:         c.LLM.Breaker.Interval,
		Timeout:          c.LLM.Breaker.Timeout,
		MinRequests:      c.LLM.Breaker.MinRequests,
		FailureThreshold: c.LLM.Breaker.FailureThreshold,
	}
	return out
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
