package middleware

import (
	"errors"
	"net/http"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	sentinel error
	status   int
	code     dto.ErrorCode
	fallback string
}

// errorMappings is checked in order; the first sentinel matching the error wins.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token not found"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"},

	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	{apperrors.ErrResetTokenExpired, http.StatusBadRequest, dto.ErrorCodeResetLinkExpired, dto.MessageResetLinkOld},
	{apperrors.ErrResetTokenUsed, http.StatusBadRequest, dto.ErrorCodeResetLinkUsed, dto.MessageResetLinkUsed},
	{apperrors.ErrResetTokenInvalid, http.StatusBadRequest, dto.ErrorCodeResetLinkInvalid, dto.MessageResetLinkBad},
	{apperrors.ErrWeakPassword, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Password is too short"},

	{apperrors.ErrRegistrationNumberExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Registration number already exists"},
	{apperrors.ErrStudentEmailExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Email address already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrFileTypeNotAllowed, http.StatusBadRequest, dto.ErrorCodeFileRejected, "File type not allowed"},
	{apperrors.ErrFileTooLarge, http.StatusBadRequest, dto.ErrorCodeFileRejected, "File too large"},
	{apperrors.ErrUnknownStage, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unknown admission stage"},
	{apperrors.ErrUnknownDocumentType, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unknown document type"},
	{apperrors.ErrInvalidReviewStatus, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid review status"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Bad request"},

	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrDocumentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Document not found"},
	{apperrors.ErrFormNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Form not found"},
	{apperrors.ErrNoticeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Notice not found"},
	{apperrors.ErrAlertNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Alert not found"},
	{apperrors.ErrFileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "File not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflict"},
}

// StatusFor returns the HTTP status and error detail for err. Unknown errors
// map to 500 with an opaque message.
func StatusFor(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			msg := m.fallback
			if safe, ok := apperrors.SafeMessage(err); ok {
				msg = safe
			}
			return m.status, dto.NewErrorDetail(m.code, msg)
		}
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

// HandleAPIError writes the error response for err
func HandleAPIError(c *gin.Context, err error) {
	status, detail := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// abortWithError writes the error response for err and stops the chain
func abortWithError(c *gin.Context, err error) {
	HandleAPIError(c, err)
	c.Abort()
}
