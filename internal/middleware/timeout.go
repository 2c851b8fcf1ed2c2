package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/i18n"
	"github.com/guttosm/smartpack-service/internal/logger"
	"github.com/guttosm/smartpack-service/internal/metrics"
)

// DefaultRequestTimeout bounds a request when no timeout is configured.
const DefaultRequestTimeout = 10 * time.Second

// Timeout attaches a deadline of d to the request context; zero or negative
// means DefaultRequestTimeout. Store calls give up when it passes. If the
// handler returns without writing anything after the deadline, the client
// gets a 504. A handler that already answered keeps its response.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		d = DefaultRequestTimeout
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		route := metrics.RouteLabel(c)
		metrics.RecordTimeout(route)
		logger.FromContext(ctx).Warn().
			Str("path", route).
			Dur("timeout", d).
			Msg("Request timed out")

		message := i18n.GetTranslator().Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusGatewayTimeout,
			dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(GetRequestID(c)))
	}
}
