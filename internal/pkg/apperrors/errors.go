package apperrors

import "errors"

// The four error kinds callers can branch on. Services wrap these through the
// constructors below to attach a message; errors.Is still matches the kind.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

// Entity lookup errors. Each wraps ErrNotFound so callers can branch on
// either the entity or the kind.
var (
	ErrCollegeNotFound    = NewNotFoundError("college not found")
	ErrDepartmentNotFound = NewNotFoundError("department not found")
	ErrClassroomNotFound  = NewNotFoundError("classroom not found")
	ErrSubjectNotFound    = NewNotFoundError("subject not found")
	ErrTeacherNotFound    = NewNotFoundError("teacher not found")
	ErrStudentNotFound    = NewNotFoundError("student not found")
	ErrEnrollmentNotFound = NewNotFoundError("enrollment not found")
	ErrGradeNotFound      = NewNotFoundError("grade not found")
	ErrUserNotFound       = NewNotFoundError("user not found")
)

// Authentication errors
var (
	ErrInvalidCredentials = NewUnauthorizedError("invalid credentials")
	ErrTokenExpired       = NewUnauthorizedError("token expired")
	ErrTokenInvalid       = NewUnauthorizedError("invalid token")
	ErrEmailAlreadyExists = NewConflictError("email already exists")
)

// NewUnauthorizedError creates an unauthorized error with a message
func NewUnauthorizedError(message string) error {
	return &CustomError{Err: ErrUnauthorized, Message: message}
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidation, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// CustomError carries a kind sentinel plus request-specific context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the underlying kind to errors.Is
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails attaches context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
