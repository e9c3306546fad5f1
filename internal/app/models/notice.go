package models

import (
	"time"

	"github.com/futureedge/counselling/internal/domain"
	"github.com/google/uuid"
)

// Notice is an admin-authored announcement
type Notice struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	Title       string              `db:"title" json:"title"`
	Content     string              `db:"content" json:"content"`
	IsImportant bool                `db:"is_important" json:"isImportant"`
	Status      domain.NoticeStatus `db:"status" json:"status"`
	PublishedAt *time.Time          `db:"published_at" json:"publishedAt"`
	CreatedBy   *uuid.UUID          `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt   time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updatedAt"`
}

// StudentAlert is a message an admin raises on one student's dashboard
type StudentAlert struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	StudentID  uuid.UUID        `db:"student_id" json:"studentId"`
	Title      string           `db:"title" json:"title"`
	Message    string           `db:"message" json:"message"`
	AlertType  domain.AlertType `db:"alert_type" json:"alertType"`
	IsResolved bool             `db:"is_resolved" json:"isResolved"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
}

// AdminUser is a console operator
type AdminUser struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FullName     string    `db:"full_name" json:"fullName"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// PasswordResetToken is a single-use reset credential
type PasswordResetToken struct {
	StudentID uuid.UUID  `db:"student_id"`
	Token     string     `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
}
