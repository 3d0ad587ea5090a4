package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is the rate limiting configuration for a route class. Path matching
// is exact, or prefix when the path ends with "/".
type Rule struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window; <= 0 means unlimited
	Window time.Duration
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Trusted         map[string]bool // client IDs exempt from limiting
	Blocked         map[string]bool // client IDs always rejected
	Rules           []Rule
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Trusted:         parseIPList(os.Getenv("RATE_LIMIT_TRUSTED")),
		Blocked:         parseIPList(os.Getenv("RATE_LIMIT_BLOCKED")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-route limits. OTP endpoints get the strictest
// limits to slow down code guessing; match endpoints are bounded because a
// match request scores the full candidate pool.
func DefaultRules() []Rule {
	return []Rule{
		// OTP issuance and verification
		{Path: "/auth/otp/request", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},
		{Path: "/auth/otp/verify", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		// Match and search endpoints
		{Path: "/workers/", Method: "GET", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/jobs/", Method: "GET", Limit: 60, Window: time.Minute, Burst: 20},

		// Write operations
		{Path: "/workers", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/workers/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/jobs", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "PATCH", Limit: 30, Window: time.Minute, Burst: 10},
	}
}

// matchRule resolves the rule for a path and method. Health checks are
// unlimited; unmatched routes fall back to the default limit.
func (c *Config) matchRule(path, method string) Rule {
	if path == "/health" && method == "GET" {
		return Rule{Limit: 0}
	}

	for _, rule := range c.Rules {
		if rule.Method == method && rule.Path == path {
			return rule
		}
	}
	for _, rule := range c.Rules {
		if rule.Method == method && strings.HasSuffix(rule.Path, "/") &&
			strings.HasPrefix(path, rule.Path) {
			return rule
		}
	}

	return Rule{
		Path:   "/",
		Limit:  c.DefaultLimit,
		Window: c.DefaultWindow,
		Burst:  c.DefaultLimit,
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
