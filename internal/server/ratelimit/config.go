package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a group of routes.
type EndpointConfig struct {
	Path   string        // doublestar pattern, e.g. "/api/lead/**"
	Method string        // HTTP method; empty matches any
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
	Group  string        // endpoints with the same group share one bucket per client
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the limits used when nothing is configured: 600
// requests per minute for page views and the lead endpoints from
// LeadEndpointConfigs at 10 per hour with a burst of 3.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: LeadEndpointConfigs(10, time.Hour, 3),
	}
}

// LeadEndpointConfigs limits the form submission endpoints, which send email.
func LeadEndpointConfigs(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/lead", Method: "POST", Limit: limit, Window: window, Burst: burst, Group: "lead"},
		{Path: "/api/lead/**", Method: "POST", Limit: limit, Window: window, Burst: burst, Group: "lead"},
		{Path: "/api/employer-lead", Method: "POST", Limit: limit, Window: window, Burst: burst, Group: "lead"},
	}
}

// ParseIPList turns a list of addresses, each possibly comma-separated, into a set.
func ParseIPList(entries []string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range entries {
		for _, ip := range strings.Split(entry, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				result[ip] = true
			}
		}
	}
	return result
}
