package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/pkg/errors"
)

// RateLimiter defines the interface for rate limiting implementations.
type RateLimiter interface {
	// Allow checks if a request with the given key is allowed.
	// Returns whether the request is allowed and current rate limit info.
	Allow(key string) (bool, RateLimitInfo)
}

// RateLimitInfo contains current rate limit state for a given key.
type RateLimitInfo struct {
	// Limit is the maximum number of requests allowed per window.
	Limit int
	// Remaining is the number of requests remaining in the current window.
	Remaining int
	// ResetAt is the time when the rate limit window resets.
	ResetAt time.Time
}

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size above the sustained rate.
	BurstSize int
	// KeyFunc extracts the rate limit key from a request. Defaults to the
	// client IP.
	KeyFunc func(c *gin.Context) string
	// SkipPaths are paths that bypass rate limiting.
	SkipPaths []string
	// CleanupInterval is how often idle buckets are dropped.
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns the default rate limit configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 2,
		BurstSize:         10,
		KeyFunc:           defaultKeyFunc,
		SkipPaths:         []string{"/healthz", "/readyz", "/metrics"},
		CleanupInterval:   5 * time.Minute,
	}
}

func defaultKeyFunc(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// --- Token Bucket Limiter ---

type bucket struct {
	tokens float64
	seen   time.Time
}

// TokenBucketLimiter keeps one token bucket per key. Buckets idle for longer
// than the cleanup interval are dropped.
type TokenBucketLimiter struct {
	rate  float64
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewTokenBucketLimiter creates a limiter refilling rate tokens per second up
// to burst. A positive cleanupInterval starts a janitor goroutine that Stop
// terminates.
func NewTokenBucketLimiter(rate float64, burst int, cleanupInterval time.Duration) *TokenBucketLimiter {
	if rate <= 0 {
		rate = 1
	}
	if burst <= 0 {
		burst = 1
	}
	l := &TokenBucketLimiter{
		rate:    rate,
		burst:   burst,
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go l.janitor(cleanupInterval)
	}
	return l
}

// Allow takes one token from key's bucket if one is available.
func (l *TokenBucketLimiter) Allow(key string) (bool, RateLimitInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.burst), seen: now}
		l.buckets[key] = b
	}
	b.tokens = math.Min(float64(l.burst), b.tokens+now.Sub(b.seen).Seconds()*l.rate)
	b.seen = now

	info := RateLimitInfo{Limit: l.burst}
	if b.tokens < 1 {
		wait := time.Duration((1 - b.tokens) / l.rate * float64(time.Second))
		info.ResetAt = now.Add(wait)
		return false, info
	}
	b.tokens--
	info.Remaining = int(b.tokens)
	info.ResetAt = now.Add(time.Duration(float64(time.Second) / l.rate))
	return true, info
}

func (l *TokenBucketLimiter) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(every)
		case <-l.stop:
			return
		}
	}
}

func (l *TokenBucketLimiter) evictIdle(idle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-idle)
	for key, b := range l.buckets {
		if b.seen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the janitor. It is safe to call more than once.
func (l *TokenBucketLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// BucketCount returns the number of tracked keys.
func (l *TokenBucketLimiter) BucketCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// --- Middleware ---

// RateLimit returns middleware that enforces limiter per client.
func RateLimit(limiter RateLimiter, config RateLimitConfig) gin.HandlerFunc {
	skipSet := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skipSet[p] = true
	}

	keyFunc := config.KeyFunc
	if keyFunc == nil {
		keyFunc = defaultKeyFunc
	}

	return func(c *gin.Context) {
		if skipSet[c.Request.URL.Path] {
			c.Next()
			return
		}

		allowed, info := limiter.Allow(keyFunc(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(info.ResetAt.Unix(), 10))

		if !allowed {
			retryAfter := time.Until(info.ResetAt).Seconds()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(int(retryAfter)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    string(errors.ErrCodeTooManyRequests),
				"message": "rate limit exceeded, please retry later",
			})
			return
		}
		c.Next()
	}
}

//Personal.AI order the ending
