// Package ratelimit provides per-client rate limiting using a token bucket
// algorithm. Scrape and clone requests launch a browser or call a model, so
// each client gets a small steady budget rather than unbounded access.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// bucket is a token bucket for a single client.
type bucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// allow refills the bucket for elapsed time and consumes one token if
// available.
func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill)
	b.tokens = min(float64(b.capacity), b.tokens+elapsed.Seconds()*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Config holds rate limiter settings.
type Config struct {
	// Limit is the number of requests allowed per Window, and also the
	// burst capacity.
	Limit int
	// Window is the period over which Limit requests refill.
	Window time.Duration
	// CleanupInterval controls how often idle client buckets are dropped.
	CleanupInterval time.Duration
}

// DefaultConfig allows 10 requests per minute per client.
func DefaultConfig() *Config {
	return &Config{
		Limit:           10,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// Limiter tracks one token bucket per client IP.
type Limiter struct {
	config     *Config
	buckets    map[string]*bucket
	lastAccess map[string]time.Time
	mu         sync.Mutex
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		stop:       make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether the client identified by clientID may proceed.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	b, ok := l.buckets[clientID]
	if !ok {
		refillRate := float64(l.config.Limit) / l.config.Window.Seconds()
		b = newBucket(l.config.Limit, refillRate)
		l.buckets[clientID] = b
	}
	l.lastAccess[clientID] = time.Now()
	l.mu.Unlock()

	return b.allow()
}

// Stop terminates the cleanup loop. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than one cleanup interval.
func (l *Limiter) cleanup() {
	cutoff := time.Now().Add(-l.config.CleanupInterval)

	l.mu.Lock()
	defer l.mu.Unlock()
	for id, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, id)
			delete(l.lastAccess, id)
		}
	}
}

// ClientID extracts the client identity from a request, preferring proxy
// headers over the remote address.
func ClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
