package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/logger"
	"github.com/guttosm/smartpack-service/internal/service"
)

// RequestLogger writes one line per request through the request-scoped logger and,
// when loggingService is set, persists the same data as a model.LogEntry.
// 5xx responses log at error level, 4xx at warn, the rest at info.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		level := levelForStatus(status)

		logger.FromContext(c.Request.Context()).WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("HTTP request")

		if loggingService == nil {
			return
		}
		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Level:      level.String(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: status,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		identity, _ := GetIdentity(c)
		persistLogEntry(loggingService, entry.WithIdentity(identity))
	}
}

// persistLogEntry hands the entry to the async logger, or writes it from a
// short-lived goroutine when no async logger is running.
func persistLogEntry(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		if asyncLogger.Log(entry) {
			return
		}
		l := logger.Logger()
		l.Debug().Str("request_id", entry.RequestID).Msg("Async log buffer full, entry dropped")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}

func levelForStatus(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
