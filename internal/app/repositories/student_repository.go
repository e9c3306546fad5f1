package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/db"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/dberrors"
	"github.com/futureedge/counselling/internal/pkg/helpers"
	"github.com/futureedge/counselling/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Constraint names from migrations/001_init.sql
const (
	constraintStudentRegistration = "students_registration_number_key"
	constraintStudentEmail        = "students_email_key"
)

var studentColumns = []string{
	"id", "registration_number", "email", "full_name", "password_hash",
	"must_change_password", "admission_stage", "mobile_number", "alternate_contact_number",
	"exam_types", "category", "home_state", "preferred_branches", "preferred_colleges",
	"created_at", "updated_at",
}

// IStudentRepository defines the student persistence operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*models.Student, error)
	List(ctx context.Context, filter models.StudentListFilter) ([]*models.Student, int64, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, update models.StudentProfileUpdate) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, mustChange bool) error
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db db.DBTX
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.DBTX) *StudentRepository {
	return &StudentRepository{db: q}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.RegistrationNumber, &s.Email, &s.FullName, &s.PasswordHash,
		&s.MustChangePassword, &s.AdmissionStage, &s.MobileNumber, &s.AlternateContactNumber,
		&s.ExamTypes, &s.Category, &s.HomeState, &s.PreferredBranches, &s.PreferredColleges,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return &s, nil
}

func mapStudentWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintStudentRegistration):
		return apperrors.ErrRegistrationNumberExists
	case dberrors.IsDuplicateConstraintError(err, constraintStudentEmail):
		return apperrors.ErrStudentEmailExists
	}
	return err
}

// Create inserts the student row and its role row in one transaction. The
// generated ID and timestamps are written back into student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	insertSQL, args, err := squirrel.Insert("students").
		Columns("registration_number", "email", "full_name", "password_hash", "must_change_password",
			"admission_stage", "mobile_number", "exam_types", "category", "home_state").
		Values(student.RegistrationNumber, student.Email, student.FullName, student.PasswordHash, student.MustChangePassword,
			student.AdmissionStage, student.MobileNumber, student.ExamTypes, student.Category, student.HomeState).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building create student query: %w", err)
	}

	return db.InTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertSQL, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
			if mapped := mapStudentWriteError(err); mapped != err {
				return mapped
			}
			logger.Error().Err(err).Str("registrationNumber", student.RegistrationNumber).Msg("Error inserting student")
			return fmt.Errorf("error creating student: %w", err)
		}

		return NewRoleRepository(tx).Assign(ctx, student.ID, domain.RoleStudent)
	})
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	query, args, err := squirrel.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building get student query: %w", err)
	}
	return scanStudent(r.db.QueryRow(ctx, query, args...))
}

// GetByRegistrationNumber retrieves a student by exact registration number
func (r *StudentRepository) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*models.Student, error) {
	query, args, err := squirrel.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"registration_number": registrationNumber}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building get student query: %w", err)
	}
	return scanStudent(r.db.QueryRow(ctx, query, args...))
}

func applyStudentFilter(b squirrel.SelectBuilder, filter models.StudentListFilter) squirrel.SelectBuilder {
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"full_name": like},
			squirrel.ILike{"registration_number": like},
			squirrel.ILike{"email": like},
		})
	}
	if filter.Stage != "" {
		if filter.Stage == domain.StageNames()[0] {
			b = b.Where(squirrel.Or{squirrel.Eq{"admission_stage": filter.Stage}, squirrel.Eq{"admission_stage": nil}})
		} else {
			b = b.Where(squirrel.Eq{"admission_stage": filter.Stage})
		}
	}
	return b
}

// List returns one page of students, newest first, with the total match count
func (r *StudentRepository) List(ctx context.Context, filter models.StudentListFilter) ([]*models.Student, int64, error) {
	countSQL, countArgs, err := applyStudentFilter(
		squirrel.Select("count(*)").From("students").PlaceholderFormat(squirrel.Dollar), filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}
	if total == 0 {
		return []*models.Student{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	query, args, err := applyStudentFilter(
		squirrel.Select(studentColumns...).From("students").PlaceholderFormat(squirrel.Dollar), filter,
	).OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0, limit)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating students: %w", err)
	}
	return students, total, nil
}

// UpdateStage sets the admission stage of one student
func (r *StudentRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET admission_stage = $1, updated_at = now() WHERE id = $2`,
		stage, id,
	)
	if err != nil {
		return fmt.Errorf("error updating admission stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateProfile writes the non-nil fields of update
func (r *StudentRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update models.StudentProfileUpdate) error {
	if update.IsEmpty() {
		_, err := r.GetByID(ctx, id)
		return err
	}

	b := squirrel.Update("students").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if update.FullName != nil {
		b = b.Set("full_name", strings.TrimSpace(*update.FullName))
	}
	if update.Email != nil {
		b = b.Set("email", strings.ToLower(strings.TrimSpace(*update.Email)))
	}
	if update.MobileNumber != nil {
		b = b.Set("mobile_number", nullIfEmpty(*update.MobileNumber))
	}
	if update.AlternateContactNumber != nil {
		b = b.Set("alternate_contact_number", nullIfEmpty(*update.AlternateContactNumber))
	}
	if update.ExamTypes != nil {
		b = b.Set("exam_types", update.ExamTypes)
	}
	if update.Category != nil {
		b = b.Set("category", *update.Category)
	}
	if update.HomeState != nil {
		b = b.Set("home_state", nullIfEmpty(*update.HomeState))
	}
	if update.PreferredBranches != nil {
		b = b.Set("preferred_branches", update.PreferredBranches)
	}
	if update.PreferredColleges != nil {
		b = b.Set("preferred_colleges", update.PreferredColleges)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("error building profile update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapStudentWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdatePassword stores a new hash and sets the first-login flag
func (r *StudentRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, mustChange bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET password_hash = $1, must_change_password = $2, updated_at = now() WHERE id = $3`,
		passwordHash, mustChange, id,
	)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
