package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrUnauthorized       = errors.New("authentication required")

	ErrPermissionDenied = errors.New("permission denied")

	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound          = errors.New("student not found")
	ErrRegistrationNumberExists = errors.New("registration number already exists")
	ErrStudentEmailExists       = errors.New("email address already exists")
	ErrUnknownStage             = errors.New("unknown admission stage")
)

// Document and form errors
var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrFormNotFound        = errors.New("form not found")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrFileTypeNotAllowed  = errors.New("file type not allowed")
	ErrFileTooLarge        = errors.New("file too large")
	ErrInvalidReviewStatus = errors.New("invalid review status")
	ErrFileNotFound        = errors.New("file not found")
)

// Notice and alert errors
var (
	ErrNoticeNotFound = errors.New("notice not found")
	ErrAlertNotFound  = errors.New("alert not found")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("invalid or expired reset link")
	ErrResetTokenExpired = errors.New("reset link has expired")
	ErrResetTokenUsed    = errors.New("reset link has already been used")
	ErrWeakPassword      = errors.New("password too short")
)

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// CustomError carries an error kind plus a message that is safe to show to callers.
type CustomError struct {
	Err     error
	Message string
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
	return &CustomError{Err: err, Message: message}
}

// SafeMessage returns the caller-facing message carried by err, if any.
func SafeMessage(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}
