package http

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/i18n"
	"github.com/guttosm/smartpack-service/internal/middleware"
)

// envelopePool recycles response envelopes. gin serializes synchronously,
// so an envelope can go back to the pool as soon as JSON returns.
type envelopePool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

func newEnvelopePool[T any](reset func(*T)) *envelopePool[T] {
	return &envelopePool[T]{
		pool:  sync.Pool{New: func() interface{} { return new(T) }},
		reset: reset,
	}
}

func (p *envelopePool[T]) get() *T {
	if v, ok := p.pool.Get().(*T); ok {
		return v
	}
	return new(T)
}

func (p *envelopePool[T]) put(v *T) {
	p.reset(v)
	p.pool.Put(v)
}

var (
	successEnvelopes = newEnvelopePool(func(r *dto.SuccessResponse) {
		*r = dto.SuccessResponse{}
	})
	errorEnvelopes = newEnvelopePool(func(r *dto.ErrorResponse) {
		*r = dto.ErrorResponse{}
	})
)

// validatable is implemented by every request DTO.
type validatable interface {
	Validate() error
}

// decodeRequest binds the JSON body into a new T and runs its Validate method.
// Decode errors are returned as-is; validation failures are *dto.ValidationError.
func decodeRequest[T any, PT interface {
	*T
	validatable
}](c *gin.Context) (*T, error) {
	req := PT(new(T))
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return (*T)(req), nil
}

// ResponseBuilder writes the dto envelopes, stamping each with the request ID.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success wraps data in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := successEnvelopes.get()
	defer successEnvelopes.put(resp)

	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	b.c.JSON(statusCode, resp)
}

// SuccessOK answers 200.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated answers 201.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with the message for messageKey in the caller's locale.
// A non-nil err is attached to the context for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.abort(statusCode, message, err)
}

// ErrorWithMessage aborts with an already formatted message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, message, err)
}

func (b *ResponseBuilder) abort(statusCode int, message string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}

	resp := errorEnvelopes.get()
	defer errorEnvelopes.put(resp)

	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	b.c.AbortWithStatusJSON(statusCode, resp)
}

// Attachment sends content as a plain-text download named filename.
func (b *ResponseBuilder) Attachment(filename, content string) {
	b.c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	b.c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
