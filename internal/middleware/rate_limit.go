package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Decision is the outcome of a single rate limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Config() RateLimitConfig
}

// RedisLimiter is a fixed window counter shared by every API instance.
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter creates a new rate limiter instance
func NewRedisLimiter(redisClient *redis.Client, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
	}
}

func (rl *RedisLimiter) Config() RateLimitConfig { return rl.config }

// Allow counts the request against the current window.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= rl.config.Limit,
		Remaining: remaining,
		Reset:     windowStart.Add(rl.config.Window),
	}, nil
}

// LocalLimiter is an in-process token bucket per key, used when Redis is
// not configured. A bucket left idle for a full window has refilled, so it
// is dropped on the next sweep and recreated on demand.
type LocalLimiter struct {
	config    RateLimitConfig
	mu        sync.Mutex
	limiters  map[string]*localBucket
	lastSweep time.Time
	now       func() time.Time
}

type localBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		config:   config,
		limiters: make(map[string]*localBucket),
		now:      time.Now,
	}
}

func (l *LocalLimiter) Config() RateLimitConfig { return l.config }

func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	now := l.now()
	l.sweep(now)
	b, ok := l.limiters[key]
	if !ok {
		every := rate.Every(l.config.Window / time.Duration(l.config.Limit))
		b = &localBucket{lim: rate.NewLimiter(every, l.config.Limit)}
		l.limiters[key] = b
	}
	b.lastSeen = now
	lim := b.lim
	l.mu.Unlock()

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	reset := now
	if missing := float64(l.config.Limit) - tokens; missing > 0 && lim.Limit() > 0 {
		reset = now.Add(time.Duration(missing / float64(lim.Limit()) * float64(time.Second)))
	}
	return Decision{Allowed: allowed, Remaining: remaining, Reset: reset}, nil
}

// sweep drops buckets idle for at least one window. It runs at most once per
// window and must be called with l.mu held.
func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.config.Window {
		return
	}
	l.lastSweep = now
	for key, b := range l.limiters {
		if now.Sub(b.lastSeen) >= l.config.Window {
			delete(l.limiters, key)
		}
	}
}

// RateLimit enforces the limiter on writes, keyed by the authenticated user.
// Reads pass through. When the limiter itself fails the request is let
// through.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	cfg := limiter.Config()
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, ok := c.Get(ContextUserID); ok {
			key = fmt.Sprintf("user:%v", userID)
		}

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limit check failed", "error", err, "request_id", RequestIDFromContext(c))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))

		if !decision.Allowed {
			rateLimitRejects.Inc()
			retryAfter := int(time.Until(decision.Reset).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", cfg.Limit, cfg.Window),
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
