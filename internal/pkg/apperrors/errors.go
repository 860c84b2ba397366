package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrUnauthenticated   = errors.New("authentication required")
	ErrTokenInvalid      = errors.New("invalid token")
	ErrIncorrectEmail    = errors.New("Incorrect Email")
	ErrIncorrectPassword = errors.New("Incorrect Password")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("no user found!")
	ErrEmailAlreadyExists = errors.New("User with this email already exists")
	ErrUsernameTaken      = errors.New("Username is already taken!")
)

// Course errors
var (
	ErrCourseNotFound  = errors.New("no course found!")
	ErrChapterNotFound = errors.New("no chapter found!")
)

// Payment and enrollment errors
var (
	ErrPaymentNotFound    = errors.New("no payment found!")
	ErrEnrollmentNotFound = errors.New("no enrollment found!")
	ErrEnrollmentExists   = errors.New("user is already enrolled in this course")
)

// NotFound reports whether err is any of the not-found sentinels
func NotFound(err error) bool {
	return Is(err, ErrResourceNotFound,
		ErrUserNotFound, ErrCourseNotFound, ErrChapterNotFound,
		ErrPaymentNotFound, ErrEnrollmentNotFound)
}

// Duplicate reports whether err is any of the uniqueness sentinels
func Duplicate(err error) bool {
	return Is(err, ErrResourceAlreadyExists,
		ErrConflict, ErrEmailAlreadyExists, ErrUsernameTaken, ErrEnrollmentExists)
}

// NewValidationError creates a validation error carrying a user-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
