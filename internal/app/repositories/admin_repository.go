package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/db"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IAdminRepository defines admin account persistence
type IAdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	Create(ctx context.Context, admin *models.AdminUser) error
}

// AdminRepository handles database operations for console operators
type AdminRepository struct {
	db db.DBTX
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(q db.DBTX) *AdminRepository {
	return &AdminRepository{db: q}
}

const adminSelect = `SELECT id, email, full_name, password_hash, created_at FROM admin_users`

// GetByEmail retrieves an admin by case-insensitive email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var a models.AdminUser
	err := r.db.QueryRow(ctx, adminSelect+` WHERE email = $1`, strings.ToLower(strings.TrimSpace(email))).
		Scan(&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &a, nil
}

// GetByID retrieves an admin by ID
func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	var a models.AdminUser
	err := r.db.QueryRow(ctx, adminSelect+` WHERE id = $1`, id).
		Scan(&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &a, nil
}

// Create inserts an admin account and grants it the admin role
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	return db.InTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO admin_users (email, full_name, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`,
			admin.Email, admin.FullName, admin.PasswordHash,
		).Scan(&admin.ID, &admin.CreatedAt)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrResourceAlreadyExists
			}
			return fmt.Errorf("error creating admin: %w", err)
		}

		return NewRoleRepository(tx).Assign(ctx, admin.ID, domain.RoleAdmin)
	})
}
