package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeTimeout        = "timeout"
	// ErrCodeUnavailable means the report store is down or disabled.
	ErrCodeUnavailable = "service_unavailable"
	ErrCodeInternal    = "internal_error"

	ErrCodeIdempotencyKeyReused = "idempotency_key_reused"
	ErrCodeIdempotencyKeyInUse  = "idempotency_key_in_use"
)

var statusErrCodes = map[int]string{
	http.StatusBadRequest:          ErrCodeInvalidRequest,
	http.StatusUnauthorized:        ErrCodeUnauthorized,
	http.StatusNotFound:            ErrCodeNotFound,
	http.StatusTooManyRequests:     ErrCodeRateLimit,
	http.StatusRequestTimeout:      ErrCodeTimeout,
	http.StatusGatewayTimeout:      ErrCodeTimeout,
	http.StatusServiceUnavailable:  ErrCodeUnavailable,
	http.StatusInternalServerError: ErrCodeInternal,
}

// SuccessResponse is the envelope around every successful payload.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the envelope around every error. Message is already
// translated for the caller's locale.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"product: is required"`
	// Details names the offending field on validation errors.
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError stamps an error envelope with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now()}
}

// WithRequestID returns a copy carrying requestID.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail returns a copy with key set in Details. The receiver's map is not modified.
func (e ErrorResponse) WithDetail(key, value string) ErrorResponse {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus maps an HTTP status to its error code. Unknown statuses are internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusErrCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}

// RecommendResponse is a recommendation with the utilization target of its packaging type.
//
// @Description Box recommendation
type RecommendResponse struct {
	model.Recommendation
	UtilizationTarget *model.PackagingTarget `json:"utilization_target,omitempty"`
} // @name RecommendResponse

// CatalogResponse lists the values clients can choose from.
//
// @Description Packaging types, categories, fragility classes and board grades
type CatalogResponse struct {
	PackagingTypes    []model.PackagingType                         `json:"packaging_types"`
	ProductCategories []string                                      `json:"product_categories"`
	Fragilities       []model.Fragility                             `json:"fragilities"`
	Thickness         []model.ThicknessSpec                         `json:"thickness"`
	Targets           map[model.PackagingType]model.PackagingTarget `json:"targets"`
} // @name CatalogResponse

// NewCatalogResponse builds the catalog from the domain tables.
func NewCatalogResponse() CatalogResponse {
	targets := make(map[model.PackagingType]model.PackagingTarget, len(model.PackagingTypes))
	for _, pt := range model.PackagingTypes {
		if t, ok := pt.Target(); ok {
			targets[pt] = t
		}
	}
	return CatalogResponse{
		PackagingTypes:    append([]model.PackagingType(nil), model.PackagingTypes...),
		ProductCategories: append([]string(nil), model.ProductCategories...),
		Fragilities:       append([]model.Fragility(nil), model.Fragilities...),
		Thickness:         model.ThicknessCatalog(),
		Targets:           targets,
	}
}

// ReportListResponse is the list of saved reports of the signed-in user.
//
// @Description Saved reports, newest first
type ReportListResponse struct {
	Reports []model.Report `json:"reports"`
	Count   int            `json:"count" example:"1"`
} // @name ReportListResponse

// SaveReportResponse is a stored report with the quote it was rendered from.
//
// @Description Saved report and its quote
type SaveReportResponse struct {
	Report model.Report `json:"report"`
	Quote  model.Quote  `json:"quote"`
	// FeedbackRecorded is false when the feedback queue dropped the event.
	FeedbackRecorded bool `json:"feedback_recorded" example:"true"`
} // @name SaveReportResponse

// DeleteReportResponse confirms a deleted report.
//
// @Description Deleted report id
type DeleteReportResponse struct {
	ID      string `json:"id" example:"6650c0f4e13a4b5d8c1e2f3a"`
	Message string `json:"message" example:"Report deleted"`
} // @name DeleteReportResponse
