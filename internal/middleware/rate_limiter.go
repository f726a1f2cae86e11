package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/mnk3936/Highway-metals/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// slidingWindow counts requests per IP within a fixed-length window.
// Entries for quiet IPs are purged periodically to bound memory.
type slidingWindow struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	sw := &slidingWindow{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
	}
	go sw.purgeLoop()
	return sw
}

// allow registers one request for ip and reports whether it is within limit.
func (sw *slidingWindow) allow(ip string) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	entry, ok := sw.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &windowEntry{windowEnd: now.Add(sw.window)}
		sw.entries[ip] = entry
	}
	entry.count++
	return entry.count <= sw.limit
}

const purgeInterval = 5 * time.Minute

func (sw *slidingWindow) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		sw.mu.Lock()
		purged := 0
		for ip, entry := range sw.entries {
			if now.After(entry.windowEnd) {
				delete(sw.entries, ip)
				purged++
			}
		}
		remaining := len(sw.entries)
		sw.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("purged", purged).
				Int("remaining", remaining).
				Msg("rate limiter entries purged")
		}
	}
}

// RateLimiter returns a general-purpose per-IP limiter for the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	sw := newSlidingWindow(limit, window)
	return func(c *gin.Context) {
		if !sw.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many requests, slow down"))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits credential attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	sw := newSlidingWindow(20, time.Minute)
	return func(c *gin.Context) {
		if !sw.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many login attempts, try again in a minute"))
			return
		}
		c.Next()
	}
}
