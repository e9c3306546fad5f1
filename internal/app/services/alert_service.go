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

// AlertService lets admins raise and resolve alerts on a student's dashboard
type AlertService struct {
	alertRepo   repositories.IAlertRepository
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewAlertService creates a new AlertService
func NewAlertService(alertRepo repositories.IAlertRepository, studentRepo repositories.IStudentRepository, logger zerolog.Logger) *AlertService {
	return &AlertService{alertRepo: alertRepo, studentRepo: studentRepo, logger: logger}
}

// Create raises an alert for studentID
func (s *AlertService) Create(ctx context.Context, studentID uuid.UUID, req dto.CreateAlertRequest) (*models.StudentAlert, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	alertType := domain.AlertType(req.AlertType)
	if alertType == "" {
		alertType = domain.AlertInfo
	}

	alert := &models.StudentAlert{
		StudentID: studentID,
		Title:     strings.TrimSpace(req.Title),
		Message:   strings.TrimSpace(req.Message),
		AlertType: alertType,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentId", studentID.String()).Str("alertId", alert.ID.String()).Msg("Student alert raised")
	return alert, nil
}

// Resolve marks an alert resolved
func (s *AlertService) Resolve(ctx context.Context, id uuid.UUID) error {
	return s.alertRepo.Resolve(ctx, id)
}
