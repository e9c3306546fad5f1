package repositories

import (
	"context"
	"fmt"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/db"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const documentColumns = `id, student_id, document_type, file_path, file_name, file_size, mime_type,
	status, admin_note, reviewed_by, reviewed_at, uploaded_at, updated_at`

// IDocumentRepository defines persistence for student documents
type IDocumentRepository interface {
	Upsert(ctx context.Context, doc *models.DocumentRecord) (previousPath string, err error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.DocumentRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.DocumentRecord, error)
	GetByFilePath(ctx context.Context, filePath string) (*models.DocumentRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, note *string, reviewer uuid.UUID) (*models.DocumentRecord, error)
}

// DocumentRepository handles database operations for student_documents
type DocumentRepository struct {
	db db.DBTX
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(q db.DBTX) *DocumentRepository {
	return &DocumentRepository{db: q}
}

func scanDocument(row pgx.Row) (*models.DocumentRecord, error) {
	var d models.DocumentRecord
	err := row.Scan(
		&d.ID, &d.StudentID, &d.DocumentType, &d.FilePath, &d.FileName, &d.FileSize, &d.MimeType,
		&d.Status, &d.AdminNote, &d.ReviewedBy, &d.ReviewedAt, &d.UploadedAt, &d.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error scanning document: %w", err)
	}
	return &d, nil
}

// Upsert replaces the record for (student, type) with a fresh pending upload
// and returns the file path it displaced, or "" for a first upload. The
// existing row is locked before it is read, so concurrent uploads each see
// the path they actually replaced.
func (r *DocumentRepository) Upsert(ctx context.Context, doc *models.DocumentRecord) (string, error) {
	var previous string
	err := db.InTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO student_documents (student_id, document_type, file_path, file_name, file_size, mime_type, status)
			VALUES ($1, $2, $3, $4, $5, $6, 'pending')
			ON CONFLICT (student_id, document_type) DO NOTHING
			RETURNING id, uploaded_at, updated_at`,
			doc.StudentID, doc.DocumentType, doc.FilePath, doc.FileName, doc.FileSize, doc.MimeType,
		).Scan(&doc.ID, &doc.UploadedAt, &doc.UpdatedAt)
		if err == nil {
			return nil
		}
		if !dberrors.IsNoRows(err) {
			return fmt.Errorf("error inserting document: %w", err)
		}

		// Waits for any concurrent writer and reads its committed path
		if err := tx.QueryRow(ctx, `
			SELECT file_path FROM student_documents
			WHERE student_id = $1 AND document_type = $2
			FOR UPDATE`,
			doc.StudentID, doc.DocumentType,
		).Scan(&previous); err != nil {
			return fmt.Errorf("error locking document: %w", err)
		}

		err = tx.QueryRow(ctx, `
			UPDATE student_documents SET
				file_path = $3,
				file_name = $4,
				file_size = $5,
				mime_type = $6,
				status = 'pending',
				admin_note = NULL,
				reviewed_by = NULL,
				reviewed_at = NULL,
				uploaded_at = now(),
				updated_at = now()
			WHERE student_id = $1 AND document_type = $2
			RETURNING id, uploaded_at, updated_at`,
			doc.StudentID, doc.DocumentType, doc.FilePath, doc.FileName, doc.FileSize, doc.MimeType,
		).Scan(&doc.ID, &doc.UploadedAt, &doc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error updating document: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	doc.Status = domain.ReviewPending
	doc.AdminNote = nil
	doc.ReviewedBy = nil
	doc.ReviewedAt = nil

	if previous == doc.FilePath {
		return "", nil
	}
	return previous, nil
}

// ListByStudent returns a student's documents, newest upload first
func (r *DocumentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.DocumentRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM student_documents WHERE student_id = $1 ORDER BY uploaded_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	docs := []models.DocumentRecord{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DocumentRecord, error) {
	return scanDocument(r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM student_documents WHERE id = $1`, id))
}

// GetByFilePath retrieves the document whose stored object is filePath
func (r *DocumentRepository) GetByFilePath(ctx context.Context, filePath string) (*models.DocumentRecord, error) {
	return scanDocument(r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM student_documents WHERE file_path = $1`, filePath))
}

// UpdateStatus records a review verdict and returns the updated record
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, note *string, reviewer uuid.UUID) (*models.DocumentRecord, error) {
	return scanDocument(r.db.QueryRow(ctx, `
		UPDATE student_documents
		SET status = $1, admin_note = $2, reviewed_by = $3, reviewed_at = now(), updated_at = now()
		WHERE id = $4
		RETURNING `+documentColumns,
		string(status), note, reviewer, id,
	))
}
