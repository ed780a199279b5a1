// ratelimit.go enforces per-client token-bucket limits on the /v1 routes,
// answering 429 when a client exceeds its requests-per-minute budget.
package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/chariot-giving/agapay/internal/api/apierr"
	"github.com/chariot-giving/agapay/internal/safego"
	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// RequestsPerMinute is the steady-state refill rate
	RequestsPerMinute int
	// BurstSize is the bucket capacity
	BurstSize int
	// CleanupInterval is how often idle clients are forgotten
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns the limits used when configuration sets none.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 200,
		BurstSize:         50,
		CleanupInterval:   5 * time.Minute,
	}
}

// idleTimeout is how long a client can go without requests before its bucket is dropped.
const idleTimeout = 10 * time.Minute

type rateLimitEntry struct {
	tokens     float64
	lastUpdate time.Time
}

// RateLimiter implements a token bucket per client key.
type RateLimiter struct {
	config  RateLimitConfig
	entries map[string]*rateLimitEntry
	mu      sync.Mutex
	stopCh  chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewRateLimiter starts a limiter and its cleanup goroutine. Call Stop to release it.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		config:  config,
		entries: make(map[string]*rateLimitEntry),
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}
	safego.Go("rate-limit-cleanup", rl.cleanup)
	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for key, entry := range rl.entries {
		if now.Sub(entry.lastUpdate) > idleTimeout {
			delete(rl.entries, key)
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// refill tops up entry for the time elapsed since its last update. Caller holds mu.
func (rl *RateLimiter) refill(entry *rateLimitEntry, now time.Time) {
	perSecond := float64(rl.config.RequestsPerMinute) / 60.0
	entry.tokens = min(float64(rl.config.BurstSize), entry.tokens+now.Sub(entry.lastUpdate).Seconds()*perSecond)
	entry.lastUpdate = now
}

// Allow consumes one token for key and reports whether the request may
// proceed, along with the tokens left afterwards.
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.entries[key]
	if !ok {
		entry = &rateLimitEntry{tokens: float64(rl.config.BurstSize), lastUpdate: now}
		rl.entries[key] = entry
	} else {
		rl.refill(entry, now)
	}

	if entry.tokens < 1 {
		return false, 0
	}
	entry.tokens--
	return true, int(entry.tokens)
}

// RateLimitMiddleware rejects requests over the limit with 429 and reports
// the remaining budget in X-RateLimit-* headers.
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	limit := strconv.Itoa(limiter.config.RequestsPerMinute)
	return func(c *gin.Context) {
		allowed, remaining := limiter.Allow(rateLimitKey(c))
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.Header("Retry-After", "60")
			apierr.Abort(c, apierr.NewTooManyRequests("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}

// rateLimitKey buckets authenticated requests by API key and the rest by client IP.
func rateLimitKey(c *gin.Context) string {
	if prefix := c.GetString(APIKeyPrefixKey); prefix != "" {
		return "apikey:" + prefix
	}
	return "ip:" + c.ClientIP()
}
