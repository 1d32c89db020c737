package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, 50*time.Millisecond)

	t.Run("allows up to the limit then refuses", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("10.0.0.1"), "request %d should pass", i+1)
		}
		assert.False(t, rl.Allow("10.0.0.1"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		assert.True(t, rl.Allow("10.0.0.2"))
	})

	t.Run("window reset restores the budget", func(t *testing.T) {
		time.Sleep(60 * time.Millisecond)
		assert.True(t, rl.Allow("10.0.0.1"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(RateLimit(NewRateLimiter(1, time.Minute)))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(BodyLimit(8))
	engine.POST("/echo", func(c *gin.Context) {
		data, err := c.GetRawData()
		if err != nil {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, "%d", len(data))
	})

	t.Run("small bodies pass", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", nil)
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized bodies are refused", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := make([]byte, 64)
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(body))
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
