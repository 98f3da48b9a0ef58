package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiter tracks rate limits for a single identifier
type Limiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages rate limiting for multiple identifiers
type RateLimiter struct {
	limiters map[string]*Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
}

// NewRateLimiter creates a new rate limiter
// rate: requests per second
// burst: maximum burst size
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*Limiter),
		rate:     r,
		burst:    b,
		idleTTL:  5 * time.Minute,
	}
}

// PerMinute builds a limiter allowing n requests per minute per identifier
func PerMinute(n, burst int) *RateLimiter {
	if burst <= 0 {
		burst = n
	}
	return NewRateLimiter(rate.Limit(float64(n)/60.0), burst)
}

// Allow reports whether identifier may make a request now
func (rl *RateLimiter) Allow(identifier string) bool {
	return rl.GetLimiter(identifier).Allow()
}

// GetLimiter returns the rate limiter for an identifier
func (rl *RateLimiter) GetLimiter(identifier string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[identifier]
	if !exists {
		limiter = &Limiter{
			limiter: rate.NewLimiter(rl.rate, rl.burst),
		}
		rl.limiters[identifier] = limiter
	}
	limiter.lastSeen = time.Now()

	return limiter.limiter
}

// Len reports how many identifiers are tracked
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Run evicts idle limiters until ctx is done
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for id, limiter := range rl.limiters {
		if now.Sub(limiter.lastSeen) > rl.idleTTL {
			delete(rl.limiters, id)
		}
	}
}

// PerIP creates middleware that rate limits by client IP
func PerIP(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// WebSocketLimiter tracks message rate for one WebSocket connection
type WebSocketLimiter struct {
	limiter *rate.Limiter
}

// NewWebSocketLimiter creates a limiter for WebSocket messages
func NewWebSocketLimiter(messagesPerMinute, burst int) *WebSocketLimiter {
	if burst <= 0 {
		burst = messagesPerMinute
	}
	return &WebSocketLimiter{
		limiter: rate.NewLimiter(rate.Limit(messagesPerMinute)/60.0, burst),
	}
}

// Allow checks if a message is allowed
func (wsl *WebSocketLimiter) Allow() bool {
	return wsl.limiter.Allow()
}
