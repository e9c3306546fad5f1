package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/futureedge/counselling/internal/pkg/helpers"
	"github.com/futureedge/counselling/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultCategory = "Open"

// StudentService manages student records and their admission stage
type StudentService struct {
	studentRepo  repositories.IStudentRepository
	documentRepo repositories.IDocumentRepository
	formRepo     repositories.IFormRepository
	hasher       auth.PasswordHasher
	logger       zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	documentRepo repositories.IDocumentRepository,
	formRepo repositories.IFormRepository,
	hasher auth.PasswordHasher,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:  studentRepo,
		documentRepo: documentRepo,
		formRepo:     formRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

// CreateStudent enrols a student with a temporary password they must change
// at first login
func (s *StudentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	hash, err := s.hasher.Hash(req.TempPassword)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = defaultCategory
	}

	student := &models.Student{
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:           strings.TrimSpace(req.FullName),
		PasswordHash:       hash,
		MustChangePassword: true,
		MobileNumber:       optionalString(req.MobileNumber),
		ExamTypes:          req.ExamTypes,
		Category:           category,
		HomeState:          optionalString(req.HomeState),
	}
	if student.ExamTypes == nil {
		student.ExamTypes = []string{}
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRegistrationNumberExists):
			return nil, apperrors.NewCustomError(err, "Registration number already exists")
		case errors.Is(err, apperrors.ErrStudentEmailExists):
			return nil, apperrors.NewCustomError(err, "Email address already exists")
		}
		return nil, err
	}

	s.logger.Info().
		Str("studentId", student.ID.String()).
		Str("registrationNumber", student.RegistrationNumber).
		Msg("Student created")
	return student, nil
}

// ListStudents returns one page of student summaries
func (s *StudentService) ListStudents(ctx context.Context, filter models.StudentListFilter) ([]dto.StudentSummary, dto.PaginationInfo, error) {
	students, total, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	items := make([]dto.StudentSummary, 0, len(students))
	for _, st := range students {
		items = append(items, dto.NewStudentSummary(st))
	}
	return items, helpers.NewPaginationInfo(total, filter.Page, filter.Size), nil
}

// GetStudent loads one student
func (s *StudentService) GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentDetail assembles the admin detail view
func (s *StudentService) GetStudentDetail(ctx context.Context, id uuid.UUID) (*dto.StudentDetailResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.ListByStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	forms, err := s.formRepo.ListByStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDetailResponse{
		Student:   dto.NewStudentSummary(student),
		Progress:  Progress(student),
		Documents: docs,
		Forms:     forms,
	}, nil
}

// GetStage returns the student's current stage and its index
func (s *StudentService) GetStage(ctx context.Context, id uuid.UUID) (*dto.StageResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, idx := domain.ResolveStage(student.AdmissionStage)
	return &dto.StageResponse{
		StageName:  name,
		StageIndex: idx,
		Stages:     domain.StageNames(),
	}, nil
}

func checkStage(stage string) (string, error) {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		return "", apperrors.NewCustomError(apperrors.ErrUnknownStage, "Admission stage is required")
	}
	if !domain.IsKnownStage(stage) {
		return "", apperrors.NewCustomError(apperrors.ErrUnknownStage,
			fmt.Sprintf("Unknown admission stage %q", stage))
	}
	return stage, nil
}

// SetStage moves one student to stage. Any jump, forward or back, is allowed.
func (s *StudentService) SetStage(ctx context.Context, id uuid.UUID, stage string) (*models.Student, error) {
	name, err := checkStage(stage)
	if err != nil {
		s.logger.Warn().Str("studentId", id.String()).Str("stage", stage).Msg("Rejected stage outside the catalog")
		return nil, err
	}
	stage = name

	if err := s.studentRepo.UpdateStage(ctx, id, stage); err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentId", id.String()).Str("stage", stage).Msg("Admission stage updated")
	return s.studentRepo.GetByID(ctx, id)
}

// BulkSetStage moves every listed student to stage, one update per student.
// Malformed or missing IDs and per-row failures are skipped; the result is the
// number of students actually updated.
func (s *StudentService) BulkSetStage(ctx context.Context, studentIDs []string, stage string) (int, error) {
	stage, err := checkStage(stage)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, raw := range studentIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			s.logger.Warn().Str("studentId", raw).Msg("Skipping malformed student id in bulk stage update")
			continue
		}

		if err := s.studentRepo.UpdateStage(ctx, id, stage); err != nil {
			if !errors.Is(err, apperrors.ErrStudentNotFound) {
				s.logger.Error().Err(err).Str("studentId", id.String()).Msg("Bulk stage update failed for student")
			}
			continue
		}
		updated++
	}

	s.logger.Info().Int("requested", len(studentIDs)).Int("updated", updated).Str("stage", stage).Msg("Bulk stage update finished")
	return updated, nil
}

// UpdateStudent applies an admin edit: stage first, then profile fields
func (s *StudentService) UpdateStudent(ctx context.Context, id uuid.UUID, req dto.UpdateStudentRequest) (*models.Student, error) {
	if req.AdmissionStage != nil {
		if _, err := s.SetStage(ctx, id, *req.AdmissionStage); err != nil {
			return nil, err
		}
	}
	return s.UpdateProfile(ctx, id, req.ProfileUpdate())
}

// UpdateProfile writes profile fields after validating contact numbers
func (s *StudentService) UpdateProfile(ctx context.Context, id uuid.UUID, update models.StudentProfileUpdate) (*models.Student, error) {
	if update.MobileNumber != nil && !validation.IsValidMobile(strings.TrimSpace(*update.MobileNumber)) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Mobile number must be exactly 10 digits")
	}
	if update.AlternateContactNumber != nil && !validation.IsValidMobile(strings.TrimSpace(*update.AlternateContactNumber)) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Alternate contact number must be exactly 10 digits")
	}

	if err := s.studentRepo.UpdateProfile(ctx, id, update); err != nil {
		if errors.Is(err, apperrors.ErrStudentEmailExists) {
			return nil, apperrors.NewCustomError(err, "Email address already exists")
		}
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

// Progress builds the stage tracker block for a student
func Progress(student *models.Student) dto.StageProgress {
	name, idx := domain.ResolveStage(student.AdmissionStage)
	return dto.StageProgress{
		Stages:            domain.StageNames(),
		CurrentStage:      name,
		CurrentStageIndex: idx,
		IsProfileComplete: student.IsProfileComplete(),
	}
}

func optionalString(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
