package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bus-route-server/metrics"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID adds a request ID to each request, reusing the caller's
// X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Metrics logs every request and records its duration and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		// route template, not the raw path
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()

		if status >= 400 {
			log.Printf("ERROR: [%s] %s %s -> %d (%v)", requestIDFrom(c), c.Request.Method, c.Request.URL.Path, status, duration)
		} else {
			log.Printf("[%s] %s %s -> %d (%v)", requestIDFrom(c), c.Request.Method, c.Request.URL.Path, status, duration)
		}
		metrics.HttpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration.Seconds())
		metrics.HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
	}
}
