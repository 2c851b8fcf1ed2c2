package i18n

// Request and transport errors.
const (
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyTimeout            = "error.timeout"

	ErrKeyIdempotencyKeyReused = "error.idempotency_key_reused"
	ErrKeyIdempotencyKeyInUse  = "error.idempotency_key_in_use"
)

// Authentication errors. API keys guard the service; identity tokens guard reports.
const (
	ErrKeyAPIKeyRequired = "error.api_key_required"
	ErrKeyInvalidAPIKey  = "error.invalid_api_key"
	ErrKeyTokenRequired  = "error.token_required"
	ErrKeyInvalidToken   = "error.invalid_token"
)

// Validation errors for a missing top-level object.
const (
	ErrKeyValidationProduct = "error.validation.product"
	ErrKeyValidationBox     = "error.validation.box"
)

// Report store errors.
const (
	ErrKeyReportNotFound     = "error.report_not_found"
	ErrKeyInvalidReportID    = "error.invalid_report_id"
	ErrKeyReportsUnavailable = "error.reports_unavailable"
)

// SuccessKeyReportDeleted confirms a report deletion.
const SuccessKeyReportDeleted = "success.report_deleted"
