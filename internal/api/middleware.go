package api

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/julianstephens/energyflow/internal/logger"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware ensures every request has a correlation/request ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Next()
	}
}

// LoggingMiddleware logs each request at debug level, and server errors at warn.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := logger.Named("api")
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("request", kv...)
			return
		}
		log.Debug("request", kv...)
	}
}

// NewLimiter returns a token bucket allowing rps requests per second. rps <= 0 disables limiting.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 || math.IsInf(rps, 1) {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}

// SetLimit updates l in place, e.g. after a config reload.
func SetLimit(l *rate.Limiter, rps float64, burst int) {
	if rps <= 0 || math.IsInf(rps, 1) {
		l.SetLimit(rate.Inf)
		return
	}
	l.SetLimit(rate.Limit(rps))
	l.SetBurst(max(burst, 1))
}

// RateLimitMiddleware rejects requests with 429 once the limiter is exhausted.
func RateLimitMiddleware(l *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			fail(c, http.StatusTooManyRequests, CodeRateLimited, "too many requests")
			return
		}
		c.Next()
	}
}
