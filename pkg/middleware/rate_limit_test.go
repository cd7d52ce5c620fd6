package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightpath/site-backend/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))

	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2))
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, serve(r, "GET", "/ok").Code)
	require.Equal(t, http.StatusOK, serve(r, "GET", "/ok").Code)

	require.Equal(t, before+2, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2, 1))
	r.POST("/api/contact", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, serve(r, "POST", "/api/contact").Code)

	w := serve(r, "POST", "/api/contact")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))

	// one token is back after half a second
	time.Sleep(600 * time.Millisecond)
	require.Equal(t, http.StatusOK, serve(r, "POST", "/api/contact").Code)
}

func TestRateLimitMiddleware_KeysByVisitor(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(VisitorKey, c.GetHeader("X-Test-Visitor"))
		c.Next()
	})
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/u", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	do := func(visitor string) int {
		req := httptest.NewRequest("GET", "/u", nil)
		req.Header.Set("X-Test-Visitor", visitor)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, do("a"))
	require.Equal(t, http.StatusTooManyRequests, do("a"))
	// same IP, different visitor
	require.Equal(t, http.StatusOK, do("b"))
}
