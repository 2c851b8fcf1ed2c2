package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/i18n"
	"github.com/guttosm/smartpack-service/internal/logger"
	"github.com/guttosm/smartpack-service/internal/metrics"
)

// Recovery turns a handler panic into a translated 500 carrying the request ID.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			route := metrics.RouteLabel(c)
			metrics.RecordPanic(route)

			requestID := GetRequestID(c)
			l := logger.Logger()
			l.Error().
				Str("request_id", requestID).
				Str("method", c.Request.Method).
				Str("route", route).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Handler panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
		}()
		c.Next()
	}
}
