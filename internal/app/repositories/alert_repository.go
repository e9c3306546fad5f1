package repositories

import (
	"context"
	"fmt"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/db"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/google/uuid"
)

// IAlertRepository defines persistence for student alerts
type IAlertRepository interface {
	Create(ctx context.Context, alert *models.StudentAlert) error
	ListUnresolved(ctx context.Context, studentID uuid.UUID) ([]models.StudentAlert, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

// AlertRepository handles database operations for student_alerts
type AlertRepository struct {
	db db.DBTX
}

// NewAlertRepository creates a new AlertRepository
func NewAlertRepository(q db.DBTX) *AlertRepository {
	return &AlertRepository{db: q}
}

// Create inserts an unresolved alert
func (r *AlertRepository) Create(ctx context.Context, alert *models.StudentAlert) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO student_alerts (student_id, title, message, alert_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_resolved, created_at`,
		alert.StudentID, alert.Title, alert.Message, string(alert.AlertType),
	).Scan(&alert.ID, &alert.IsResolved, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating alert: %w", err)
	}
	return nil
}

// ListUnresolved returns a student's open alerts, newest first
func (r *AlertRepository) ListUnresolved(ctx context.Context, studentID uuid.UUID) ([]models.StudentAlert, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, title, message, alert_type, is_resolved, created_at
		FROM student_alerts
		WHERE student_id = $1 AND is_resolved = false
		ORDER BY created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.StudentAlert{}
	for rows.Next() {
		var a models.StudentAlert
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Title, &a.Message, &a.AlertType, &a.IsResolved, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// Resolve marks an alert resolved
func (r *AlertRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE student_alerts SET is_resolved = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error resolving alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlertNotFound
	}
	return nil
}
