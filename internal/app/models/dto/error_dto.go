package dto

// ErrorCode identifies an error category in API responses.
type ErrorCode string

const (
	ErrorCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeConflict         ErrorCode = "CONFLICT"
	ErrorCodeInvalidToken     ErrorCode = "INVALID_TOKEN"
	ErrorCodeExpiredToken     ErrorCode = "EXPIRED_TOKEN"
	ErrorCodeInternalServer   ErrorCode = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail describes a single API error.
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// NewErrorDetail creates a new error detail.
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithDetails attaches extra context to the error detail.
func (e *ErrorDetail) WithDetails(details string) *ErrorDetail {
	e.Details = details
	return e
}

// ErrorResponse wraps an error detail for JSON rendering.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// NewErrorResponse creates an error response from a detail.
func NewErrorResponse(detail *ErrorDetail) ErrorResponse {
	return ErrorResponse{Error: detail}
}
