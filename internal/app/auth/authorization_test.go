package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubRoles struct {
	roles map[uuid.UUID]domain.Role
	err   error
}

func (s stubRoles) HasRole(_ context.Context, id uuid.UUID, role domain.Role) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.roles[id] == role, nil
}

func (s stubRoles) Assign(context.Context, uuid.UUID, domain.Role) error { return nil }

func TestValidateAdmin(t *testing.T) {
	admin, student := uuid.New(), uuid.New()
	dbErr := errors.New("connection reset")

	tests := []struct {
		name    string
		roles   stubRoles
		userID  uuid.UUID
		wantErr error
	}{
		{"admin passes", stubRoles{roles: map[uuid.UUID]domain.Role{admin: domain.RoleAdmin}}, admin, nil},
		{"student denied", stubRoles{roles: map[uuid.UUID]domain.Role{student: domain.RoleStudent}}, student, apperrors.ErrPermissionDenied},
		{"unknown denied", stubRoles{roles: map[uuid.UUID]domain.Role{}}, uuid.New(), apperrors.ErrPermissionDenied},
		{"lookup failure surfaces", stubRoles{err: dbErr}, admin, dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAuthorizationService(tt.roles).ValidateAdmin(context.Background(), tt.userID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateStudent(t *testing.T) {
	student := uuid.New()
	svc := NewAuthorizationService(stubRoles{roles: map[uuid.UUID]domain.Role{student: domain.RoleStudent}})

	assert.NoError(t, svc.ValidateStudent(context.Background(), student))
	assert.ErrorIs(t, svc.ValidateStudent(context.Background(), uuid.New()), apperrors.ErrPermissionDenied)
}
