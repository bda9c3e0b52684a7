package ratelimit

import (
	"github.com/bmatcuk/doublestar/v4"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the first matching EndpointConfig or nil if none matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never limited
	if path == "/health" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method != "" && config.Method != method {
			continue
		}
		if ok, err := doublestar.Match(config.Path, path); err == nil && ok {
			return config
		}
	}

	return nil
}
