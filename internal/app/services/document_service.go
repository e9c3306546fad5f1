package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/filestorage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DocumentService runs the upload and review workflow for student documents
type DocumentService struct {
	documentRepo repositories.IDocumentRepository
	studentRepo  repositories.IStudentRepository
	storage      filestorage.ObjectStorage
	bucket       string
	logger       zerolog.Logger
	now          func() time.Time
}

// NewDocumentService creates a new DocumentService storing objects in bucket
func NewDocumentService(
	documentRepo repositories.IDocumentRepository,
	studentRepo repositories.IStudentRepository,
	storage filestorage.ObjectStorage,
	bucket string,
	logger zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		studentRepo:  studentRepo,
		storage:      storage,
		bucket:       bucket,
		logger:       logger,
		now:          time.Now,
	}
}

// Upload stores file as the student's current document of docType. Type and
// size are checked before anything is written. The new object is written
// first, then the record is swapped to point at it, then the displaced object
// is removed. A failed record write removes the new object again.
func (s *DocumentService) Upload(ctx context.Context, studentID uuid.UUID, docType string, file FileUpload, limits UploadLimits) (*models.DocumentRecord, error) {
	if !domain.IsKnownDocumentType(docType) {
		return nil, apperrors.NewCustomError(apperrors.ErrUnknownDocumentType,
			fmt.Sprintf("Unknown document type %q", docType))
	}
	if err := limits.check(file); err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	mimeType := normalizedMime(file.MimeType)
	objectPath := fmt.Sprintf("%s/%s-%d.%s",
		studentID, docType, s.now().UnixMilli(), domain.ExtensionFor(mimeType, file.Name))

	written, err := s.storage.Put(ctx, s.bucket, objectPath, io.LimitReader(file.Content, limits.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	if written > limits.MaxBytes {
		s.removeObject(ctx, objectPath, "oversized upload")
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			"File exceeds the maximum size of "+humanSize(limits.MaxBytes))
	}

	record := &models.DocumentRecord{
		StudentID:    studentID,
		DocumentType: docType,
		FilePath:     objectPath,
		FileName:     path.Base(strings.ReplaceAll(file.Name, "\\", "/")),
		FileSize:     written,
		MimeType:     mimeType,
	}

	previous, err := s.documentRepo.Upsert(ctx, record)
	if err != nil {
		s.removeObject(ctx, objectPath, "record write failed")
		return nil, err
	}

	if previous != "" {
		s.removeObject(ctx, previous, "replaced by new upload")
	}

	s.logger.Info().
		Str("studentId", studentID.String()).
		Str("documentType", docType).
		Int64("size", written).
		Msg("Document uploaded")
	return record, nil
}

func (s *DocumentService) removeObject(ctx context.Context, objectPath, reason string) {
	if err := s.storage.Delete(ctx, s.bucket, objectPath); err != nil {
		s.logger.Warn().Err(err).Str("path", objectPath).Str("reason", reason).Msg("Failed to delete stored document")
	}
}

// Review records an admin verdict on a document
func (s *DocumentService) Review(ctx context.Context, documentID, adminID uuid.UUID, status string, note *string) (*models.DocumentRecord, error) {
	verdict := domain.ReviewStatus(strings.TrimSpace(status))
	if !verdict.IsAdminSettable() {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidReviewStatus,
			"Status must be one of: approved, re-upload")
	}

	if note != nil {
		trimmed := strings.TrimSpace(*note)
		if trimmed == "" {
			note = nil
		} else {
			note = &trimmed
		}
	}
	if verdict == domain.ReviewReupload && note == nil {
		s.logger.Warn().Str("documentId", documentID.String()).Msg("Re-upload requested without a note")
	}

	doc, err := s.documentRepo.UpdateStatus(ctx, documentID, verdict, note, adminID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("documentId", documentID.String()).
		Str("status", string(verdict)).
		Str("adminId", adminID.String()).
		Msg("Document reviewed")
	return doc, nil
}

// ListForStudent returns the student's documents alongside the catalog
func (s *DocumentService) ListForStudent(ctx context.Context, studentID uuid.UUID) (*dto.DocumentListResponse, error) {
	docs, err := s.documentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentListResponse{
		Documents:     docs,
		DocumentTypes: domain.DocumentTypes(),
	}, nil
}
