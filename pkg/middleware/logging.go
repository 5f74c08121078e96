package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"mindcare/pkg/metrics"
)

// RequestLogger writes one structured line per request and feeds the
// request metrics. The level follows the status code.
func RequestLogger(logger *slog.Logger, recorder metrics.Recorder) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		recorder.RecordRequest(c.Request.Method, route, status, duration)

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Float64("duration_ms", float64(duration.Nanoseconds())/float64(time.Millisecond)),
			slog.String("trace_id", c.GetString("trace_id")),
		}
		if userID := c.GetString("user_id"); userID != "" {
			attrs = append(attrs, slog.String("user_id", userID))
		}

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "http_request", attrs...)
	}
}
