package ratelimit

import (
	"path"
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Configured paths are tried as exact matches, then as patterns where "*" stands for
// one path segment ("/sessions/*/export"), then as prefixes when they end with "/".
func MatchEndpoint(reqPath string, method string, configs []EndpointConfig) *EndpointConfig {
	// Special case: health check endpoint is unlimited
	if reqPath == "/health" && method == "GET" {
		return &EndpointConfig{
			Limit:  0, // Unlimited
			Window: 0,
			Burst:  0,
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == reqPath && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method != method || !strings.Contains(config.Path, "*") {
			continue
		}
		if ok, err := path.Match(config.Path, reqPath); err == nil && ok {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(reqPath, config.Path) {
				return config
			}
		}
	}

	return nil
}
