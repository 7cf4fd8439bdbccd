package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRouter(limiter Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserID, uint(1))
		c.Next()
	})
	r.Use(RateLimit(limiter))
	r.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/items", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func TestLocalLimiterRejectsWrites(t *testing.T) {
	router := setupRateLimitRouter(NewLocalLimiter(RateLimitConfig{Limit: 2, Window: time.Hour}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// reads are never limited
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLocalLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLocalLimiter(RateLimitConfig{Limit: 1, Window: time.Hour})

	d, err := limiter.Allow(t.Context(), "user:1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = limiter.Allow(t.Context(), "user:1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = limiter.Allow(t.Context(), "user:2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestLocalLimiterEvictsIdleKeys(t *testing.T) {
	limiter := NewLocalLimiter(RateLimitConfig{Limit: 1, Window: time.Minute})
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		d, err := limiter.Allow(t.Context(), ip)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	assert.Len(t, limiter.limiters, 3)

	clock = clock.Add(30 * time.Second)
	d, err := limiter.Allow(t.Context(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	// the other addresses have been idle for a full window
	clock = clock.Add(40 * time.Second)
	d, err = limiter.Allow(t.Context(), "10.0.0.4")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Len(t, limiter.limiters, 2)
	assert.Contains(t, limiter.limiters, "10.0.0.1")
	assert.Contains(t, limiter.limiters, "10.0.0.4")

	// an evicted key starts again with a full bucket
	d, err = limiter.Allow(t.Context(), "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRateLimitFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	router := setupRateLimitRouter(NewRedisLimiter(client, RateLimitConfig{Limit: 1, Window: time.Minute, KeyPrefix: "test"}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}
