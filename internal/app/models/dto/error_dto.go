package dto

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/futureedge/counselling/internal/pkg/validation"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"
	ErrorCodeResetLinkInvalid   ErrorCode = "AUTH_010"
	ErrorCodeResetLinkExpired   ErrorCode = "AUTH_011"
	ErrorCodeResetLinkUsed      ErrorCode = "AUTH_012"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeResourceInvalid       ErrorCode = "RES_003"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidRequest   ErrorCode = "VAL_002"
	ErrorCodeFileRejected     ErrorCode = "VAL_003"

	// Server errors
	ErrorCodeInternalServer       ErrorCode = "SRV_001"
	ErrorCodeDatabaseError        ErrorCode = "SRV_002"
	ErrorCodeExternalServiceError ErrorCode = "SRV_003"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"AUTH_001"`
	Message string      `json:"message" example:"Invalid registration number or password"`
	Field   string      `json:"field,omitempty" example:"registrationNumber"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2026-06-12T10:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// HandleValidationError converts a binding error into an ErrorDetail. Field
// failures are listed in Details with their translated messages.
func HandleValidationError(err error) *ErrorDetail {
	if fields := validation.Translate(err); len(fields) > 0 {
		detail := NewErrorDetail(ErrorCodeValidationFailed, fields[0].Message).WithDetails(fields)
		if len(fields) == 1 {
			detail.Field = fields[0].Field
		}
		return detail
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return NewErrorDetail(ErrorCodeInvalidRequest, "Invalid value type").WithField(typeErr.Field)
	case errors.As(err, &syntaxErr):
		return NewErrorDetail(ErrorCodeInvalidRequest, "Malformed JSON body")
	default:
		return NewErrorDetail(ErrorCodeInvalidRequest, "Invalid request format")
	}
}
