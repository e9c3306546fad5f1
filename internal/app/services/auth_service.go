package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/futureedge/counselling/internal/pkg/email"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const messageInvalidAdminLogin = "Invalid email or password"

// AuthConfig carries the reset-flow settings
type AuthConfig struct {
	SiteURL       string
	ResetTokenTTL time.Duration
}

// AuthService handles authentication operations
type AuthService struct {
	studentRepo repositories.IStudentRepository
	adminRepo   repositories.IAdminRepository
	resetRepo   repositories.IPasswordResetTokenRepository
	hasher      auth.PasswordHasher
	jwtService  *auth.JWTService
	mailer      email.Mailer
	config      AuthConfig
	logger      zerolog.Logger
	now         func() time.Time

	// compared against on unknown registration numbers so both failure
	// paths pay for one bcrypt comparison
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(
	studentRepo repositories.IStudentRepository,
	adminRepo repositories.IAdminRepository,
	resetRepo repositories.IPasswordResetTokenRepository,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	mailer email.Mailer,
	config AuthConfig,
	logger zerolog.Logger,
) *AuthService {
	if config.ResetTokenTTL <= 0 {
		config.ResetTokenTTL = time.Hour
	}
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to prepare dummy password hash")
	}
	return &AuthService{
		studentRepo: studentRepo,
		adminRepo:   adminRepo,
		resetRepo:   resetRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		mailer:      mailer,
		config:      config,
		logger:      logger,
		now:         time.Now,
		dummyHash:   dummyHash,
	}
}

func invalidLogin() error {
	return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, dto.MessageInvalidLogin)
}

// Login authenticates a student by registration number and password. Unknown
// registration numbers and wrong passwords produce the same error and both run
// a password comparison.
func (s *AuthService) Login(ctx context.Context, registrationNumber, password string) (*dto.StudentLoginResponse, error) {
	registrationNumber = strings.TrimSpace(registrationNumber)

	student, err := s.studentRepo.GetByRegistrationNumber(ctx, registrationNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			s.logger.Info().Str("registrationNumber", registrationNumber).Msg("Login attempt for unknown registration number")
			return nil, invalidLogin()
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	if !s.hasher.Verify(student.PasswordHash, password) {
		s.logger.Info().Str("studentId", student.ID.String()).Msg("Login attempt with wrong password")
		return nil, invalidLogin()
	}

	token, expiresIn, err := s.jwtService.GenerateStudentSession(student.ID, student.RegistrationNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	return &dto.StudentLoginResponse{
		ID:                 student.ID,
		RegistrationNumber: student.RegistrationNumber,
		Email:              student.Email,
		FullName:           student.FullName,
		MustChangePassword: student.MustChangePassword,
		Token:              token,
		ExpiresIn:          expiresIn,
	}, nil
}

// AdminLogin authenticates a console operator by email and password
func (s *AuthService) AdminLogin(ctx context.Context, emailAddr, password string) (*dto.AdminLoginResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, messageInvalidAdminLogin)
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if !s.hasher.Verify(admin.PasswordHash, password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, messageInvalidAdminLogin)
	}

	token, expiresIn, err := s.jwtService.GenerateAdminToken(admin.ID, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue admin token: %w", err)
	}

	return &dto.AdminLoginResponse{
		ID:        admin.ID,
		Email:     admin.Email,
		FullName:  admin.FullName,
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

// RequestReset mints a reset token and mails a link to the student. The
// returned message does not reveal whether the registration number exists.
func (s *AuthService) RequestReset(ctx context.Context, registrationNumber, callbackBaseURL string) (string, error) {
	registrationNumber = strings.TrimSpace(registrationNumber)

	student, err := s.studentRepo.GetByRegistrationNumber(ctx, registrationNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			s.logger.Info().Str("registrationNumber", registrationNumber).Msg("Password reset requested for unknown registration number")
			return dto.MessageResetRequested, nil
		}
		return "", fmt.Errorf("failed to load student: %w", err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return "", err
	}

	if err := s.resetRepo.CreateToken(ctx, student.ID, token, s.now().Add(s.config.ResetTokenTTL)); err != nil {
		return "", err
	}

	base := strings.TrimRight(strings.TrimSpace(callbackBaseURL), "/")
	if base == "" {
		base = strings.TrimRight(s.config.SiteURL, "/")
	}
	link := base + "/reset-password?token=" + url.QueryEscape(token)

	if err := s.mailer.SendPasswordReset(ctx, student.Email, student.FullName, link); err != nil {
		s.logger.Error().Err(err).Str("studentId", student.ID.String()).Msg("Failed to send password reset email")
	}

	return dto.MessageResetRequested, nil
}

// ConsumeReset redeems a reset token and sets a new password
func (s *AuthService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	studentID, err := s.resetRepo.ResetPassword(ctx, strings.TrimSpace(token), hash)
	switch {
	case errors.Is(err, apperrors.ErrResetTokenUsed):
		return apperrors.NewCustomError(err, dto.MessageResetLinkUsed)
	case errors.Is(err, apperrors.ErrResetTokenExpired):
		return apperrors.NewCustomError(err, dto.MessageResetLinkOld)
	case errors.Is(err, apperrors.ErrResetTokenInvalid):
		return apperrors.NewCustomError(err, dto.MessageResetLinkBad)
	case err != nil:
		return err
	}

	s.logger.Info().Str("studentId", studentID.String()).Msg("Password reset completed")
	return nil
}

// FirstLoginPasswordChange replaces the temporary password of a signed-in
// student and clears the must-change flag
func (s *AuthService) FirstLoginPasswordChange(ctx context.Context, studentID uuid.UUID, newPassword string) error {
	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.studentRepo.UpdatePassword(ctx, studentID, hash, false); err != nil {
		return err
	}

	s.logger.Info().Str("studentId", studentID.String()).Msg("Student changed password")
	return nil
}

func checkPasswordStrength(password string) error {
	if len(password) < auth.MinPasswordLength {
		return apperrors.NewCustomError(apperrors.ErrWeakPassword,
			fmt.Sprintf("Password must be at least %d characters", auth.MinPasswordLength))
	}
	return nil
}
