package middleware

import (
	"net/http"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimitMiddleware_Basic(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	r := gin.New()
	r.Use(RedisRateLimitMiddleware(client, "forms", 1, 0, 1*time.Second)) // 1 req/sec, no burst
	r.GET("/r", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, serve(r, "GET", "/r").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(r, "GET", "/r").Code)

	// advance miniredis clock past window and request should be allowed
	m.FastForward(2 * time.Second)
	require.Equal(t, http.StatusOK, serve(r, "GET", "/r").Code)
}

func TestRedisRateLimitMiddleware_NilClientFallsBack(t *testing.T) {
	r := gin.New()
	r.Use(RedisRateLimitMiddleware(nil, "forms", 0.5, 1, time.Minute))
	r.GET("/r", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	require.Equal(t, http.StatusNoContent, serve(r, "GET", "/r").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(r, "GET", "/r").Code)
}

func TestRedisRateLimitMiddleware_RedisDown(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	m.Close()

	r := gin.New()
	r.Use(RedisRateLimitMiddleware(client, "forms", 1, 0, time.Second))
	r.GET("/r", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusInternalServerError, serve(r, "GET", "/r").Code)
}

func TestRedisRateLimitMiddleware_ScopesAreIndependent(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	r := gin.New()
	r.POST("/contact", RedisRateLimitMiddleware(client, "forms", 0, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/login", RedisRateLimitMiddleware(client, "login", 0, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusCreated, serve(r, "POST", "/contact").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(r, "POST", "/contact").Code)
	require.Equal(t, http.StatusOK, serve(r, "POST", "/login").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(r, "POST", "/login").Code)
}
