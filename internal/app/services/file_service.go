package services

import (
	"context"
	"errors"
	"time"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/futureedge/counselling/internal/pkg/filestorage"
	"github.com/google/uuid"
)

// File kinds a signed URL can point at
const (
	FileKindDocument = "document"
	FileKindForm     = "form"
)

// FileAccessConfig names the buckets and URL lifetimes
type FileAccessConfig struct {
	DocumentsBucket string
	FormsBucket     string
	DocumentURLTTL  time.Duration
	FormURLTTL      time.Duration
}

// FileService issues and redeems signed URLs for stored objects
type FileService struct {
	documentRepo repositories.IDocumentRepository
	formRepo     repositories.IFormRepository
	storage      filestorage.ObjectStorage
	signer       *auth.URLSigner
	config       FileAccessConfig
}

// NewFileService creates a new FileService
func NewFileService(
	documentRepo repositories.IDocumentRepository,
	formRepo repositories.IFormRepository,
	storage filestorage.ObjectStorage,
	signer *auth.URLSigner,
	config FileAccessConfig,
) *FileService {
	return &FileService{
		documentRepo: documentRepo,
		formRepo:     formRepo,
		storage:      storage,
		signer:       signer,
		config:       config,
	}
}

// SignedURL returns a time-boxed link to filePath. Admins may sign any known
// path; a student only paths recorded against their own id.
func (s *FileService) SignedURL(ctx context.Context, caller Caller, filePath, kind string) (*dto.SignedURLResponse, error) {
	var owner uuid.UUID
	bucket, ttl := s.config.DocumentsBucket, s.config.DocumentURLTTL

	if kind == FileKindForm {
		bucket, ttl = s.config.FormsBucket, s.config.FormURLTTL
		form, err := s.formRepo.GetByFilePath(ctx, filePath)
		if err != nil {
			return nil, notFoundAs(err, apperrors.ErrFormNotFound, "File not found")
		}
		owner = form.StudentID
	} else {
		doc, err := s.documentRepo.GetByFilePath(ctx, filePath)
		if err != nil {
			return nil, notFoundAs(err, apperrors.ErrDocumentNotFound, "File not found")
		}
		owner = doc.StudentID
	}

	if !caller.IsAdmin() && owner != caller.ID {
		return nil, apperrors.NewForbiddenError("You do not have access to this file")
	}

	return s.sign(bucket, filePath, ttl)
}

func (s *FileService) sign(bucket, filePath string, ttl time.Duration) (*dto.SignedURLResponse, error) {
	signed, expiresAt, err := s.signer.Sign(bucket, filePath, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.SignedURLResponse{SignedURL: signed, ExpiresAt: expiresAt}, nil
}

// Open redeems a signed-URL token and opens the object it grants
func (s *FileService) Open(ctx context.Context, token string) (*filestorage.Object, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, err
	}

	obj, err := s.storage.Open(ctx, claims.Bucket, claims.Path)
	if err != nil {
		if errors.Is(err, filestorage.ErrObjectNotFound) || errors.Is(err, filestorage.ErrInvalidPath) {
			return nil, apperrors.NewCustomError(apperrors.ErrFileNotFound, "File not found")
		}
		return nil, err
	}
	return obj, nil
}

func notFoundAs(err, sentinel error, message string) error {
	if errors.Is(err, sentinel) {
		return apperrors.NewCustomError(apperrors.ErrFileNotFound, message)
	}
	return err
}
