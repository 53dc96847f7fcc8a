package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"hattournament/src/app/http/response"
)

// cleanupThreshold is the map size above which idle clients are pruned, at
// most once per maxIdle.
const cleanupThreshold = 500

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client IP.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry
	limit   rate.Limit
	burst   int
	maxIdle time.Duration
	now     func() time.Time

	lastPrune time.Time
}

// NewClientLimiter allows rps requests per second with the given burst to
// each client. Entries idle longer than maxIdle are dropped.
func NewClientLimiter(rps float64, burst int, maxIdle time.Duration) *ClientLimiter {
	return &ClientLimiter{
		clients: make(map[string]*clientEntry),
		limit:   rate.Limit(rps),
		burst:   burst,
		maxIdle: maxIdle,
		now:     time.Now,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.clients) > cleanupThreshold && now.Sub(l.lastPrune) >= l.maxIdle {
		l.prune(now)
	}

	e, ok := l.clients[client]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (l *ClientLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.maxIdle)
	for k, e := range l.clients {
		if e.lastSeen.Before(cutoff) {
			delete(l.clients, k)
		}
	}
	l.lastPrune = now
}

// RateLimit rejects requests over the client's budget with 429.
func RateLimit(l *ClientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Error{
				Error: response.ErrorDetail{
					Code:      "RATE_LIMITED",
					Message:   "too many requests",
					RequestID: GetRequestID(c),
				},
			})
			return
		}
		c.Next()
	}
}
