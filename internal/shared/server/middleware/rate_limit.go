package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"
	// buckets untouched for this long are full again and can be dropped
	bucketIdleTTL = 10 * time.Minute
	sweepEvery    = time.Minute
)

// RateLimitRule is a token bucket refilled at Rate tokens per second up to Burst.
// A zero Rate or Burst disables limiting for the group.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig maps requests to a group and each group to a rule. Requests whose
// group has no rule pass through.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter holds one bucket per caller and group.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*rateBucket
	now       func() time.Time
	lastSweep time.Time
}

type rateBucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter returns an empty limiter; now defaults to time.Now.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{buckets: make(map[string]*rateBucket), now: now}
}

// RateLimit throttles requests per client IP and route group, and additionally per guest
// when X-Guest-Id is present.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}

		// X-Guest-Id is caller-chosen, so the client IP bucket always applies; the guest
		// bucket also catches one guest spread across addresses.
		wait, allowed := cfg.Limiter.Take("ip:"+c.ClientIP()+"|"+group, rule)
		if allowed {
			if owner := OwnerIDFromContext(c); owner != "" {
				wait, allowed = cfg.Limiter.Take(owner+"|"+group, rule)
			}
		}
		if allowed {
			c.Next()
			return
		}

		metrics.IncRateLimited()
		wait = max(wait, time.Second)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests", gin.H{
			"retryAfterMs": wait.Milliseconds(),
		})
	}
}

// Take spends one token from key's bucket. When the bucket is empty it reports how long
// until the next token is available.
func (l *RateLimiter) Take(key string, rule RateLimitRule) (time.Duration, bool) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return 0, true
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &rateBucket{tokens: float64(rule.Burst), seen: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.seen).Seconds(); elapsed > 0 {
		b.tokens = math.Min(float64(rule.Burst), b.tokens+elapsed*rule.Rate)
	}
	b.seen = now
	if b.tokens >= 1 {
		b.tokens--
		return 0, true
	}
	wait := time.Duration(math.Ceil((1-b.tokens)/rule.Rate*1000)) * time.Millisecond
	return wait, false
}

// Len reports the number of live buckets.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepEvery {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.seen) > bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
}
