package repositories

import (
	"context"
	"fmt"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/db"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const formColumns = `id, student_id, form_name, exam_type, round, file_path, file_name, file_size,
	mime_type, uploaded_by, created_at`

// IFormRepository defines persistence for admission forms
type IFormRepository interface {
	Create(ctx context.Context, form *models.FormRecord) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.FormRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FormRecord, error)
	GetByFilePath(ctx context.Context, filePath string) (*models.FormRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FormRepository handles database operations for student_forms
type FormRepository struct {
	db db.DBTX
}

// NewFormRepository creates a new FormRepository
func NewFormRepository(q db.DBTX) *FormRepository {
	return &FormRepository{db: q}
}

func scanForm(row pgx.Row) (*models.FormRecord, error) {
	var f models.FormRecord
	err := row.Scan(
		&f.ID, &f.StudentID, &f.FormName, &f.ExamType, &f.Round, &f.FilePath, &f.FileName, &f.FileSize,
		&f.MimeType, &f.UploadedBy, &f.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrFormNotFound
		}
		return nil, fmt.Errorf("error scanning form: %w", err)
	}
	return &f, nil
}

// Create inserts a form row
func (r *FormRepository) Create(ctx context.Context, form *models.FormRecord) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO student_forms (student_id, form_name, exam_type, round, file_path, file_name, file_size, mime_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		form.StudentID, form.FormName, form.ExamType, form.Round, form.FilePath, form.FileName, form.FileSize,
		form.MimeType, form.UploadedBy,
	).Scan(&form.ID, &form.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating form: %w", err)
	}
	return nil
}

// ListByStudent returns a student's forms, newest first
func (r *FormRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.FormRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+formColumns+` FROM student_forms WHERE student_id = $1 ORDER BY created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing forms: %w", err)
	}
	defer rows.Close()

	forms := []models.FormRecord{}
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, *f)
	}
	return forms, rows.Err()
}

// GetByID retrieves a form by ID
func (r *FormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FormRecord, error) {
	return scanForm(r.db.QueryRow(ctx, `SELECT `+formColumns+` FROM student_forms WHERE id = $1`, id))
}

// GetByFilePath retrieves the form whose stored object is filePath
func (r *FormRepository) GetByFilePath(ctx context.Context, filePath string) (*models.FormRecord, error) {
	return scanForm(r.db.QueryRow(ctx, `SELECT `+formColumns+` FROM student_forms WHERE file_path = $1`, filePath))
}

// Delete removes a form row
func (r *FormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM student_forms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFormNotFound
	}
	return nil
}
