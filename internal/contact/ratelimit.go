package contact

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Submission rate limit: 3 per minute with a burst of 3, per client IP.
const (
	submissionRate  = rate.Limit(3.0 / 60.0)
	submissionBurst = 3
)

// ipLimiter hands out one token bucket per client IP. Entries idle for an
// hour are dropped on the next sweep.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter() *ipLimiter {
	l := &ipLimiter{limiters: make(map[string]*limiterEntry)}
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(submissionRate, submissionBurst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	if len(l.limiters) > 1000 {
		l.sweepLocked(now)
	}

	return entry.limiter.Allow()
}

func (l *ipLimiter) sweepLocked(now time.Time) {
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > time.Hour {
			delete(l.limiters, ip)
		}
	}
}

// RateLimit throttles the public submission endpoint per client IP.
func RateLimit() gin.HandlerFunc {
	limiter := newIPLimiter()
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many submissions, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
