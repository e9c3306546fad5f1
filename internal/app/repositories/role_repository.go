package repositories

import (
	"context"
	"fmt"

	"github.com/futureedge/counselling/internal/db"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/google/uuid"
)

// IRoleRepository looks up caller roles
type IRoleRepository interface {
	HasRole(ctx context.Context, userID uuid.UUID, role domain.Role) (bool, error)
	Assign(ctx context.Context, userID uuid.UUID, role domain.Role) error
}

// RoleRepository reads and writes user_roles
type RoleRepository struct {
	db db.DBTX
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(q db.DBTX) *RoleRepository {
	return &RoleRepository{db: q}
}

// HasRole reports whether userID holds role
func (r *RoleRepository) HasRole(ctx context.Context, userID uuid.UUID, role domain.Role) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)`,
		userID, string(role),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking role: %w", err)
	}
	return exists, nil
}

// Assign grants role to userID. Granting an existing role is a no-op.
func (r *RoleRepository) Assign(ctx context.Context, userID uuid.UUID, role domain.Role) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT (user_id, role) DO NOTHING`,
		userID, string(role),
	)
	if err != nil {
		return fmt.Errorf("error assigning role: %w", err)
	}
	return nil
}
