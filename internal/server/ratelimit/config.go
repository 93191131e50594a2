package ratelimit

import "time"

// EndpointConfig scales the client budget for one endpoint
type EndpointConfig struct {
	Path   string // exact path, or a prefix when it ends with "/"
	Method string
	// Factor multiplies the default rate and burst; zero means unlimited
	Factor float64
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	RPS             float64
	Burst           int
	CleanupInterval time.Duration
	// IdleTimeout evicts limiters of clients not seen for this long
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig returns a config with the given per-client budget and the default endpoint tiers
func NewConfig(enabled bool, rps float64, burst int) *Config {
	return &Config{
		Enabled:         enabled,
		RPS:             rps,
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs slows down the endpoints that call the oracle
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/v1/batch", Method: "POST", Factor: 0.2},
		{Path: "/v1/resumes/parse", Method: "POST", Factor: 0.5},
		{Path: "/v1/search/parse", Method: "POST", Factor: 0.5},
		{Path: "/health", Method: "GET", Factor: 0},
		{Path: "/metrics", Method: "GET", Factor: 0},
	}
}
