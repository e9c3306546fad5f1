package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/filestorage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces name to a safe single path segment
func SanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "form"
	}
	return base
}

// FormService manages admin-uploaded admission forms
type FormService struct {
	formRepo    repositories.IFormRepository
	studentRepo repositories.IStudentRepository
	storage     filestorage.ObjectStorage
	files       *FileService
	logger      zerolog.Logger
	now         func() time.Time
}

// NewFormService creates a new FormService
func NewFormService(
	formRepo repositories.IFormRepository,
	studentRepo repositories.IStudentRepository,
	storage filestorage.ObjectStorage,
	files *FileService,
	logger zerolog.Logger,
) *FormService {
	return &FormService{
		formRepo:    formRepo,
		studentRepo: studentRepo,
		storage:     storage,
		files:       files,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *FormService) bucket() string {
	return s.files.config.FormsBucket
}

// Upload stores a form for a student. If the record cannot be written the
// stored object is removed.
func (s *FormService) Upload(ctx context.Context, studentID, adminID uuid.UUID, req dto.UploadFormRequest, file FileUpload, limits UploadLimits) (*models.FormRecord, error) {
	if err := limits.check(file); err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	fileName := SanitizeFilename(file.Name)
	objectPath := fmt.Sprintf("%s/%d_%s", studentID, s.now().UnixMilli(), fileName)

	written, err := s.storage.Put(ctx, s.bucket(), objectPath, io.LimitReader(file.Content, limits.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store form: %w", err)
	}
	if written > limits.MaxBytes {
		s.removeObject(ctx, objectPath)
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			"File exceeds the maximum size of "+humanSize(limits.MaxBytes))
	}

	form := &models.FormRecord{
		StudentID:  studentID,
		FormName:   strings.TrimSpace(req.FormName),
		ExamType:   strings.TrimSpace(req.ExamType),
		Round:      optionalString(req.Round),
		FilePath:   objectPath,
		FileName:   fileName,
		FileSize:   written,
		MimeType:   normalizedMime(file.MimeType),
		UploadedBy: adminID,
	}
	if err := s.formRepo.Create(ctx, form); err != nil {
		s.removeObject(ctx, objectPath)
		return nil, err
	}

	s.logger.Info().
		Str("studentId", studentID.String()).
		Str("formId", form.ID.String()).
		Str("formName", form.FormName).
		Msg("Form uploaded")
	return form, nil
}

func (s *FormService) removeObject(ctx context.Context, objectPath string) {
	if err := s.storage.Delete(ctx, s.bucket(), objectPath); err != nil {
		s.logger.Warn().Err(err).Str("path", objectPath).Msg("Failed to delete stored form")
	}
}

// ListForStudent returns a student's forms, newest first
func (s *FormService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]models.FormRecord, error) {
	return s.formRepo.ListByStudent(ctx, studentID)
}

// DownloadURL returns a short-lived link to a form the caller may read
func (s *FormService) DownloadURL(ctx context.Context, caller Caller, formID uuid.UUID) (*dto.SignedURLResponse, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && form.StudentID != caller.ID {
		return nil, apperrors.NewForbiddenError("You do not have access to this form")
	}
	return s.files.sign(s.bucket(), form.FilePath, s.files.config.FormURLTTL)
}

// Delete removes the form record, then its stored object
func (s *FormService) Delete(ctx context.Context, formID uuid.UUID) error {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return err
	}
	if err := s.formRepo.Delete(ctx, formID); err != nil {
		return err
	}
	s.removeObject(ctx, form.FilePath)

	s.logger.Info().Str("formId", formID.String()).Msg("Form deleted")
	return nil
}
