package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/circuitbreaker"
	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/i18n"
	"github.com/guttosm/smartpack-service/internal/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error when the
// handler did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		status, resp := classifyError(c, last)

		log := logger.FromContext(c.Request.Context())
		event := log.Error()
		if status < http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Err(last.Err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Request error")

		if !c.Writer.Written() {
			c.JSON(status, resp.WithRequestID(GetRequestID(c)))
		}
	}
}

// classifyError maps an attached error to a status and a translated envelope.
//
//	*dto.ValidationError       400, message and field of the error
//	gin bind error             400, invalid request body
//	circuit open               503, reports unavailable
//	context deadline exceeded  504, timeout
//	anything else              500
func classifyError(c *gin.Context, ginErr *gin.Error) (int, dto.ErrorResponse) {
	locale := i18n.GetLocale(c)
	translate := func(key string) string {
		return i18n.GetTranslator().Translate(key, locale)
	}

	var validationErr *dto.ValidationError
	switch {
	case errors.As(ginErr.Err, &validationErr):
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeInvalidRequest, validationErr.Error()).
			WithDetail("field", validationErr.Field)
	case ginErr.IsType(gin.ErrorTypeBind):
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeInvalidRequest, translate(i18n.ErrKeyInvalidRequestBody))
	case errors.Is(ginErr.Err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, dto.NewError(dto.ErrCodeUnavailable, translate(i18n.ErrKeyReportsUnavailable))
	case errors.Is(ginErr.Err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dto.NewError(dto.ErrCodeTimeout, translate(i18n.ErrKeyTimeout))
	default:
		return http.StatusInternalServerError, dto.NewError(dto.ErrCodeInternal, translate(i18n.ErrKeyInternalError))
	}
}
