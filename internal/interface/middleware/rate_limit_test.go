package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedEngine(t *testing.T, max int, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	engine := gin.New()
	engine.GET("/ping", RateLimit(rdb, max, window, KeyByIP()), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine, mr
}

func get(engine *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksOverQuota(t *testing.T) {
	engine, _ := newLimitedEngine(t, 2, time.Minute)

	require.Equal(t, http.StatusOK, get(engine).Code)
	require.Equal(t, http.StatusOK, get(engine).Code)

	w := get(engine)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// remaining never goes below zero, even many requests past the limit
	for i := 0; i < 3; i++ {
		w = get(engine)
	}
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitWindowResets(t *testing.T) {
	engine, mr := newLimitedEngine(t, 1, time.Minute)

	require.Equal(t, http.StatusOK, get(engine).Code)
	require.Equal(t, http.StatusTooManyRequests, get(engine).Code)

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, get(engine).Code)
}

func TestRateLimitNilClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/ping", RateLimit(nil, 1, time.Minute, KeyByIP()), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(engine).Code)
	}
}
