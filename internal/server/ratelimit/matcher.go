package ratelimit

import "strings"

// MatchEndpoint returns the endpoint configuration for path and method, or nil when the
// default budget applies
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
