package server

import (
	"strings"
	"time"

	"github.com/aquametric/aquatrack/internal/identity"
	"github.com/aquametric/aquatrack/internal/principal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CallerHeader names the header carrying the calling principal.
const CallerHeader = "X-Aqua-Principal"

// CallerMiddleware injects the calling principal into the request context.
// Routes stay reachable without it; mutating operations reject the missing
// caller themselves.
func CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CallerHeader)
		if raw != "" {
			caller, err := principal.Parse(raw)
			if err == nil {
				ctx := identity.WithCaller(c.Request.Context(), caller)
				c.Request = c.Request.WithContext(ctx)
				c.Set("caller", caller.String())
			}
		}
		c.Next()
	}
}

// RequestLoggingMiddleware logs each request with correlation identifiers.
func RequestLoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http.request")
	return func(c *gin.Context) {
		start := time.Now()
		requestID := ensureRequestID(c)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if caller := strings.TrimSpace(c.GetString("caller")); caller != "" {
			fields = append(fields, zap.String("caller", caller))
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.String("error", lastErr.Err.Error()))
		}

		if status >= 500 {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

func ensureRequestID(c *gin.Context) string {
	requestID := strings.TrimSpace(c.GetHeader("X-Request-Id"))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set("request_id", requestID)
	c.Header("X-Request-Id", requestID)
	return requestID
}
