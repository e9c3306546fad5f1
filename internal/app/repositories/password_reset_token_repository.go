package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/futureedge/counselling/internal/db"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IPasswordResetTokenRepository defines persistence for reset tokens
type IPasswordResetTokenRepository interface {
	CreateToken(ctx context.Context, studentID uuid.UUID, token string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, token, passwordHash string) (uuid.UUID, error)
}

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db db.DBTX
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(q db.DBTX) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: q}
}

// CreateToken stores a new password reset token
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, studentID uuid.UUID, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO password_reset_tokens (student_id, token, expires_at) VALUES ($1, $2, $3)`,
		studentID, token, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// ResetPassword consumes token and, in the same transaction, stores the new
// password hash and clears the first-login flag. A token is consumed at most
// once even under concurrent calls. Failures report why the token was refused.
func (r *PasswordResetTokenRepository) ResetPassword(ctx context.Context, token, passwordHash string) (uuid.UUID, error) {
	var studentID uuid.UUID
	err := db.InTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE password_reset_tokens
			SET used_at = now()
			WHERE token = $1 AND used_at IS NULL AND expires_at > now()
			RETURNING student_id`,
			token,
		).Scan(&studentID)
		if err != nil {
			if dberrors.IsNoRows(err) {
				return r.classifyRejected(ctx, tx, token)
			}
			return fmt.Errorf("error consuming reset token: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`UPDATE students SET password_hash = $1, must_change_password = false, updated_at = now() WHERE id = $2`,
			passwordHash, studentID,
		)
		if err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return studentID, nil
}

func (r *PasswordResetTokenRepository) classifyRejected(ctx context.Context, tx pgx.Tx, token string) error {
	var expiresAt time.Time
	var usedAt *time.Time
	err := tx.QueryRow(ctx,
		`SELECT expires_at, used_at FROM password_reset_tokens WHERE token = $1`,
		token,
	).Scan(&expiresAt, &usedAt)
	switch {
	case dberrors.IsNoRows(err):
		return apperrors.ErrResetTokenInvalid
	case err != nil:
		return fmt.Errorf("error retrieving password reset token: %w", err)
	case usedAt != nil:
		return apperrors.ErrResetTokenUsed
	case !expiresAt.After(time.Now()):
		return apperrors.ErrResetTokenExpired
	}
	return apperrors.ErrResetTokenInvalid
}
