package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chat-session-demo/backend/pkg/errors"
	"chat-session-demo/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiterRejectsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.New(logger.Config{Level: "error", JSON: true, Output: io.Discard})

	limiter := NewRateLimiter(log, RateLimiterOptions{
		Limit:          rate.Limit(1),
		Burst:          1,
		ExpiryDuration: time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return "test-client"
		},
	})

	r := gin.New()
	r.Use(errors.ErrorHandler())
	r.Use(limiter.Middleware())
	r.POST("/chat-handler", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/chat-handler", nil)
	r.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), `"success":false`)
}
