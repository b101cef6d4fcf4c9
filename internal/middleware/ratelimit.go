package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window counter keyed by client IP. State is
// process-local; a horizontally scaled deployment would need a shared
// counter store instead.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*windowState
}

type windowState struct {
	start time.Time
	count int
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*windowState),
	}
}

// Allow records an attempt for key and reports whether it fits the current
// window. The window resets once its duration has fully elapsed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	state, ok := rl.clients[key]
	if !ok || now.Sub(state.start) >= rl.window {
		rl.prune(now)
		rl.clients[key] = &windowState{start: now, count: 1}
		return true
	}

	state.count++
	return state.count <= rl.limit
}

// prune drops expired windows; called with the lock held.
func (rl *RateLimiter) prune(now time.Time) {
	if len(rl.clients) < 1024 {
		return
	}
	for key, state := range rl.clients {
		if now.Sub(state.start) >= rl.window {
			delete(rl.clients, key)
		}
	}
}

// Middleware rejects over-limit clients with 429 and the given message.
func (rl *RateLimiter) Middleware(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   message,
			})
			return
		}
		c.Next()
	}
}
