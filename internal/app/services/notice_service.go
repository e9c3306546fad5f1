package services

import (
	"context"
	"strings"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PublishedNoticeLimit is how many notices students see
const PublishedNoticeLimit = 5

// NoticeService manages announcements
type NoticeService struct {
	noticeRepo repositories.INoticeRepository
	logger     zerolog.Logger
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(noticeRepo repositories.INoticeRepository, logger zerolog.Logger) *NoticeService {
	return &NoticeService{noticeRepo: noticeRepo, logger: logger}
}

// List returns every notice, optionally filtered by status
func (s *NoticeService) List(ctx context.Context, status string) ([]models.Notice, error) {
	var filter *domain.NoticeStatus
	if status != "" {
		st := domain.NoticeStatus(status)
		filter = &st
	}
	return s.noticeRepo.List(ctx, filter, 0)
}

// ListPublished returns the latest published notices for students
func (s *NoticeService) ListPublished(ctx context.Context) ([]models.Notice, error) {
	published := domain.NoticePublished
	return s.noticeRepo.List(ctx, &published, PublishedNoticeLimit)
}

func noticeFromRequest(req dto.NoticeRequest) *models.Notice {
	status := domain.NoticeStatus(req.Status)
	if status == "" {
		status = domain.NoticeDraft
	}
	return &models.Notice{
		Title:       strings.TrimSpace(req.Title),
		Content:     strings.TrimSpace(req.Content),
		IsImportant: req.IsImportant,
		Status:      status,
	}
}

// Create stores a new notice authored by adminID
func (s *NoticeService) Create(ctx context.Context, adminID uuid.UUID, req dto.NoticeRequest) (*models.Notice, error) {
	notice := noticeFromRequest(req)
	notice.CreatedBy = &adminID
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}
	s.logger.Info().Str("noticeId", notice.ID.String()).Str("status", string(notice.Status)).Msg("Notice created")
	return notice, nil
}

// Update replaces a notice's content and status
func (s *NoticeService) Update(ctx context.Context, id uuid.UUID, req dto.NoticeRequest) (*models.Notice, error) {
	notice := noticeFromRequest(req)
	notice.ID = id
	if err := s.noticeRepo.Update(ctx, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// Delete removes a notice
func (s *NoticeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.noticeRepo.Delete(ctx, id)
}
