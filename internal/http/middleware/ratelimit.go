package middleware

import (
	"net/http"
	"sync"
	"time"
)

// Eviction defaults for idle client buckets.
const (
	defaultSweepEvery = 5 * time.Minute
	defaultIdleAfter  = 10 * time.Minute
)

// RateLimiter provides per-IP rate limiting using a token bucket.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	rate  float64 // tokens per second
	burst int     // max tokens

	idleAfter time.Duration
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter allowing rate requests/sec with the
// given burst size per IP, sweeping idle buckets at the default cadence.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	return NewRateLimiterWithEviction(rate, burst, defaultSweepEvery, defaultIdleAfter)
}

// NewRateLimiterWithEviction creates a rate limiter with an explicit sweep
// cadence and idle cutoff for evicting stale client buckets.
func NewRateLimiterWithEviction(rate float64, burst int, sweepEvery, idleAfter time.Duration) *RateLimiter {
	if sweepEvery <= 0 {
		sweepEvery = defaultSweepEvery
	}
	if idleAfter <= 0 {
		idleAfter = defaultIdleAfter
	}
	rl := &RateLimiter{
		buckets:   make(map[string]*bucket),
		rate:      rate,
		burst:     burst,
		idleAfter: idleAfter,
	}
	go rl.sweepLoop(sweepEvery)
	return rl
}

// Allow returns true if the request from ip is within the rate limit.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: float64(rl.burst), lastSeen: now}
		rl.buckets[ip] = b
	}
	b.refill(now, rl.rate, rl.burst)

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (b *bucket) refill(now time.Time, rate float64, burst int) {
	b.tokens += now.Sub(b.lastSeen).Seconds() * rate
	if b.tokens > float64(burst) {
		b.tokens = float64(burst)
	}
	b.lastSeen = now
}

// sweepLoop periodically evicts idle buckets to bound memory growth.
func (rl *RateLimiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		rl.evictIdle(time.Now())
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	cutoff := now.Add(-rl.idleAfter)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, ip)
		}
	}
}

// RateLimit returns an HTTP middleware that rejects requests exceeding the
// configured rate with 429 Too Many Requests.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !limiter.Allow(ip) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
