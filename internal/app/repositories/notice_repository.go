package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/db"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var noticeColumns = []string{
	"id", "title", "content", "is_important", "status", "published_at", "created_by", "created_at", "updated_at",
}

// INoticeRepository defines persistence for notices
type INoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error)
	List(ctx context.Context, status *domain.NoticeStatus, limit int) ([]models.Notice, error)
}

// NoticeRepository handles database operations for notices
type NoticeRepository struct {
	db db.DBTX
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(q db.DBTX) *NoticeRepository {
	return &NoticeRepository{db: q}
}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var n models.Notice
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.IsImportant, &n.Status, &n.PublishedAt, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("error scanning notice: %w", err)
	}
	return &n, nil
}

// Create inserts a notice. Published notices get published_at stamped.
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notices (title, content, is_important, status, published_at, created_by)
		VALUES ($1, $2, $3, $4, CASE WHEN $4 = 'published' THEN now() END, $5)
		RETURNING id, published_at, created_at, updated_at`,
		notice.Title, notice.Content, notice.IsImportant, string(notice.Status), notice.CreatedBy,
	).Scan(&notice.ID, &notice.PublishedAt, &notice.CreatedAt, &notice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating notice: %w", err)
	}
	return nil
}

// Update replaces the editable fields. published_at is stamped the first time
// the notice becomes published.
func (r *NoticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	err := r.db.QueryRow(ctx, `
		UPDATE notices
		SET title = $1, content = $2, is_important = $3, status = $4,
			published_at = CASE WHEN $4 = 'published' THEN COALESCE(published_at, now()) ELSE published_at END,
			updated_at = now()
		WHERE id = $5
		RETURNING published_at, created_by, created_at, updated_at`,
		notice.Title, notice.Content, notice.IsImportant, string(notice.Status), notice.ID,
	).Scan(&notice.PublishedAt, &notice.CreatedBy, &notice.CreatedAt, &notice.UpdatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrNoticeNotFound
		}
		return fmt.Errorf("error updating notice: %w", err)
	}
	return nil
}

// Delete removes a notice
func (r *NoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}
	return nil
}

// GetByID retrieves a notice by ID
func (r *NoticeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error) {
	query, args, err := squirrel.Select(noticeColumns...).From("notices").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building notice query: %w", err)
	}
	return scanNotice(r.db.QueryRow(ctx, query, args...))
}

// List returns notices newest first. The published feed orders by publish
// time; other listings fall back to creation time for drafts. A nil status
// lists every notice; limit <= 0 means no limit.
func (r *NoticeRepository) List(ctx context.Context, status *domain.NoticeStatus, limit int) ([]models.Notice, error) {
	b := squirrel.Select(noticeColumns...).From("notices").
		PlaceholderFormat(squirrel.Dollar)
	if status != nil {
		b = b.Where(squirrel.Eq{"status": string(*status)})
	}
	if status != nil && *status == domain.NoticePublished {
		b = b.OrderBy("published_at DESC")
	} else {
		b = b.OrderBy("COALESCE(published_at, created_at) DESC")
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building notice list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notices: %w", err)
	}
	defer rows.Close()

	notices := []models.Notice{}
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, *n)
	}
	return notices, rows.Err()
}
