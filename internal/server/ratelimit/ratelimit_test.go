package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l := NewLimiter(&Config{Limit: 3, Window: time.Minute, CleanupInterval: time.Minute})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client-a"), "request %d should be allowed", i+1)
	}
	assert.False(t, l.Allow("client-a"), "request over limit should be denied")
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(&Config{Limit: 1, Window: time.Minute, CleanupInterval: time.Minute})
	defer l.Stop()

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-b"), "separate client has its own bucket")
}

func TestLimiterRefills(t *testing.T) {
	// 10 tokens per second so a short sleep is enough to refill one.
	l := NewLimiter(&Config{Limit: 1, Window: 100 * time.Millisecond, CleanupInterval: time.Minute})
	defer l.Stop()

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))

	time.Sleep(150 * time.Millisecond)
	assert.True(t, l.Allow("client-a"), "bucket should refill after the window")
}

func TestClientID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.10:52318"
	assert.Equal(t, "192.0.2.10", ClientID(r))

	r.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", ClientID(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ClientID(r))
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	l := NewLimiter(&Config{Limit: 1, Window: time.Minute, CleanupInterval: 10 * time.Millisecond})
	defer l.Stop()

	l.Allow("client-a")
	time.Sleep(30 * time.Millisecond)
	l.cleanup()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.buckets)
}
