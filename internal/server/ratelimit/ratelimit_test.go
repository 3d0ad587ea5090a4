package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(rules []Rule) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Trusted:       map[string]bool{},
		Blocked:       map[string]bool{},
		Rules:         rules,
	}
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewLimiter(testConfig([]Rule{
		{Path: "/auth/otp/request", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},
	}))
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/auth/otp/request", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 5, info.Limit)

	allowed, _ = l.Allow("1.2.3.4", "/auth/otp/request", "POST")
	assert.True(t, allowed)
}

func TestLimiter_RejectsBeyondBurst(t *testing.T) {
	l := NewLimiter(testConfig([]Rule{
		{Path: "/auth/otp/request", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},
	}))
	defer l.Stop()

	l.Allow("1.2.3.4", "/auth/otp/request", "POST")
	l.Allow("1.2.3.4", "/auth/otp/request", "POST")

	allowed, info := l.Allow("1.2.3.4", "/auth/otp/request", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig([]Rule{
		{Path: "/auth/otp/request", Method: "POST", Limit: 5, Window: time.Minute, Burst: 1},
	}))
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/auth/otp/request", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/auth/otp/request", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("5.6.7.8", "/auth/otp/request", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l := NewLimiter(testConfig(nil))
	defer l.Stop()

	for i := 0; i < 500; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/auth/otp/request", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_TrustedAndBlocked(t *testing.T) {
	cfg := testConfig([]Rule{
		{Path: "/auth/otp/request", Method: "POST", Limit: 1, Window: time.Minute, Burst: 1},
	})
	cfg.Trusted["10.0.0.1"] = true
	cfg.Blocked["6.6.6.6"] = true

	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/auth/otp/request", "POST")
		require.True(t, allowed)
	}

	allowed, _ := l.Allow("6.6.6.6", "/health", "POST")
	assert.False(t, allowed)
}

func TestMatchRule_ExactBeforePrefix(t *testing.T) {
	cfg := testConfig([]Rule{
		{Path: "/jobs", Method: "POST", Limit: 30, Window: time.Minute},
		{Path: "/jobs/", Method: "GET", Limit: 60, Window: time.Minute},
	})

	rule := cfg.matchRule("/jobs", "POST")
	assert.Equal(t, 30, rule.Limit)

	rule = cfg.matchRule("/jobs/abc/matches", "GET")
	assert.Equal(t, 60, rule.Limit)
}

func TestMatchRule_FallsBackToDefault(t *testing.T) {
	cfg := testConfig(nil)

	rule := cfg.matchRule("/jobs/abc", "DELETE")
	assert.Equal(t, cfg.DefaultLimit, rule.Limit)
	assert.Equal(t, cfg.DefaultWindow, rule.Window)
}

func TestBucket_RefillsOverTime(t *testing.T) {
	b := newBucket(1, 100) // 100 tokens/second refill

	require.True(t, b.take())
	require.False(t, b.take())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.take(), "bucket should refill after the window")
}
