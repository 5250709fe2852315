package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// KeyGenerator identifies the client a request is counted against
	KeyGenerator func(c *fiber.Ctx) string
}

// DefaultRateLimiterConfig limits each client IP to 60 analyses per minute
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Max:    60,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}
}

// clientWindow tracks the fixed window of one client
type clientWindow struct {
	count      int
	windowEnd  time.Time
	lastAccess time.Time
}

// RateLimiter implements per-client fixed-window rate limiting
type RateLimiter struct {
	config  RateLimiterConfig
	clients map[string]*clientWindow
	mu      sync.Mutex
	done    chan struct{}
	once    sync.Once
}

// NewRateLimiter creates a new rate limiter and starts its cleanup goroutine
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	defaults := DefaultRateLimiterConfig()
	if config.Max <= 0 {
		config.Max = defaults.Max
	}
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = defaults.KeyGenerator
	}

	rl := &RateLimiter{
		config:  config,
		clients: make(map[string]*clientWindow),
		done:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop shuts down the cleanup goroutine; it is safe to call more than once
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() {
		close(rl.done)
	})
}

// Handler returns the Fiber middleware handler
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := rl.config.KeyGenerator(c)
		if key == "" {
			return c.Next()
		}

		count, windowEnd := rl.hit(key, time.Now())

		remaining := rl.config.Max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", windowEnd.Format(time.RFC3339))

		if count > rl.config.Max {
			retry := int(time.Until(windowEnd).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Set("Retry-After", strconv.Itoa(retry))
			return domain.ErrRateLimitExceeded
		}

		return c.Next()
	}
}

// hit counts one request for key and returns the count within the current
// window together with the window end.
func (rl *RateLimiter) hit(key string, now time.Time) (int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.clients[key]
	if !ok || now.After(w.windowEnd) {
		w = &clientWindow{windowEnd: now.Add(rl.config.Window)}
		rl.clients[key] = w
	}
	w.count++
	w.lastAccess = now

	return w.count, w.windowEnd
}

// cleanup removes stale entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.evict(now)
		}
	}
}

// evict drops clients idle for more than two windows
func (rl *RateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.clients {
		if now.Sub(w.lastAccess) > 2*rl.config.Window {
			delete(rl.clients, key)
		}
	}
}
