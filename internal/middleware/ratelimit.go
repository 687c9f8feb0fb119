package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// maxClients is the maximum number of tracked IPs to prevent memory exhaustion.
const maxClients = 100_000

// RateLimiter applies a per-IP token bucket using golang.org/x/time/rate.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rate    rate.Limit
	burst   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter with the given requests per second and
// burst size. It starts a background goroutine to evict stale clients, which
// stops when ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		rate:    rate.Limit(ratePerSec),
		burst:   burst,
	}
	go rl.startCleanup(ctx)

	return rl
}

// startCleanup periodically evicts clients that have been idle too long.
func (rl *RateLimiter) startCleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	const maxAge = 10 * time.Minute

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, cl := range rl.clients {
				if now.Sub(cl.lastSeen) > maxAge {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler returns Gin middleware that applies rate limiting per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() is safe from X-Forwarded-For spoofing because
		// SetTrustedProxies(nil) in router.go disables proxy header trust.
		ip := c.ClientIP()

		rl.mu.Lock()
		cl, ok := rl.clients[ip]
		if !ok {
			// Reject new IPs when the client table is full to prevent memory exhaustion.
			if len(rl.clients) >= maxClients {
				rl.mu.Unlock()
				respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

				return
			}

			cl = &client{limiter: rate.NewLimiter(rl.rate, rl.burst)}
			rl.clients[ip] = cl
		}

		cl.lastSeen = time.Now()
		allowed := cl.limiter.Allow()
		rl.mu.Unlock()

		if !allowed {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
