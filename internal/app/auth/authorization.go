package auth

import (
	"context"

	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/logger"
	"github.com/google/uuid"
)

// AuthorizationService answers role questions against user_roles
type AuthorizationService struct {
	roleRepo repositories.IRoleRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(roleRepo repositories.IRoleRepository) *AuthorizationService {
	return &AuthorizationService{roleRepo: roleRepo}
}

// IsAdmin checks if the user holds the admin role
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	ok, err := s.roleRepo.HasRole(ctx, userID, domain.RoleAdmin)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error checking admin role")
		return false, err
	}
	return ok, nil
}

// ValidateAdmin returns ErrPermissionDenied unless the user is an admin
func (s *AuthorizationService) ValidateAdmin(ctx context.Context, userID uuid.UUID) error {
	ok, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewForbiddenError("Admin access required")
	}
	return nil
}

// ValidateStudent returns ErrPermissionDenied unless the user is a student
func (s *AuthorizationService) ValidateStudent(ctx context.Context, userID uuid.UUID) error {
	ok, err := s.roleRepo.HasRole(ctx, userID, domain.RoleStudent)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error checking student role")
		return err
	}
	if !ok {
		return apperrors.NewForbiddenError("Student access required")
	}
	return nil
}
