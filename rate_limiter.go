package main

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"foodRecipesWebsite/internal/logger"
)

// RateLimiter implements a token bucket rate limiter per client IP
type RateLimiter struct {
	rate       time.Duration
	capacity   int
	tokens     map[string]*TokenBucket
	mutex      sync.Mutex
	cleanupTTL time.Duration
	now        func() time.Time
}

// TokenBucket represents a token bucket for a specific client
type TokenBucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerMinute int, burstCapacity int) *RateLimiter {
	return &RateLimiter{
		rate:       time.Minute / time.Duration(requestsPerMinute),
		capacity:   burstCapacity,
		tokens:     make(map[string]*TokenBucket),
		cleanupTTL: 10 * time.Minute,
		now:        time.Now,
	}
}

// Allow checks if a request from the given IP should be allowed
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	bucket, exists := rl.tokens[ip]
	if !exists {
		bucket = &TokenBucket{tokens: rl.capacity, lastRefill: now}
		rl.tokens[ip] = bucket
	}

	if refill := int(now.Sub(bucket.lastRefill) / rl.rate); refill > 0 {
		bucket.tokens += refill
		if bucket.tokens > rl.capacity {
			bucket.tokens = rl.capacity
		}
		bucket.lastRefill = bucket.lastRefill.Add(time.Duration(refill) * rl.rate)
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}
	return false
}

// StartCleanupRoutine removes idle buckets until stop is closed
func (rl *RateLimiter) StartCleanupRoutine(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				rl.cleanup()
			}
		}
	}()
}

func (rl *RateLimiter) cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for ip, bucket := range rl.tokens {
		if now.Sub(bucket.lastRefill) > rl.cleanupTTL {
			delete(rl.tokens, ip)
		}
	}
}

// RateLimitMiddleware limits form submissions per client IP. GET requests
// pass through so the form itself always renders.
func (app *App) RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			ip := getRealIP(r, app.Config.TrustProxyHeaders)
			if !limiter.Allow(ip) {
				app.Metrics.RateLimited()
				logger.Log.WithFields(map[string]interface{}{
					"ip":     ip,
					"method": r.Method,
					"path":   r.URL.Path,
				}).Warn("Rate limit exceeded")

				w.Header().Set("Retry-After", "60")
				http.Error(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getRealIP extracts the client IP address from the request. X-Real-IP and
// X-Forwarded-For are only honored when trustProxy is set.
func getRealIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}

		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
