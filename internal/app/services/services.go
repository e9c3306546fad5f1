package services

import (
	"io"
	"mime"
	"strconv"
	"strings"

	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/google/uuid"
)

// Services defined in this package:
// - AuthService: student and admin login, password reset, first-login change
// - StudentService: enrolment, listing, stage tracking and profile edits
// - DocumentService: document upload and review
// - FileService: signed URLs and signed-URL redemption
// - FormService: admission form upload, listing, download and delete
// - NoticeService, AlertService, DashboardService

// Caller identifies who is making a request, as established by the auth middleware
type Caller struct {
	ID   uuid.UUID
	Role domain.Role
}

// IsAdmin reports whether the caller passed the admin gate
func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// UploadLimits bounds one upload path
type UploadLimits struct {
	MaxBytes     int64
	AllowedTypes []string
}

// FileUpload is an incoming file as seen by the services
type FileUpload struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// normalizedMime lowercases the media type and drops parameters
func normalizedMime(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// check rejects files whose type or size falls outside the limits
func (l UploadLimits) check(f FileUpload) error {
	mt := normalizedMime(f.MimeType)
	allowed := false
	for _, t := range l.AllowedTypes {
		if t == mt {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.NewCustomError(apperrors.ErrFileTypeNotAllowed,
			"File type not allowed. Accepted types: "+strings.Join(l.AllowedTypes, ", "))
	}
	if f.Size <= 0 {
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "File is empty")
	}
	if f.Size > l.MaxBytes {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			"File exceeds the maximum size of "+humanSize(l.MaxBytes))
	}
	return nil
}

func humanSize(n int64) string {
	const mib = 1 << 20
	if n%mib == 0 {
		return strconv.FormatInt(n/mib, 10) + "MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}
