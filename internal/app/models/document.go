package models

import (
	"time"

	"github.com/futureedge/counselling/internal/domain"
	"github.com/google/uuid"
)

// DocumentRecord is the single active upload for a (student, document type) pair
type DocumentRecord struct {
	ID           uuid.UUID           `db:"id" json:"id"`
	StudentID    uuid.UUID           `db:"student_id" json:"studentId"`
	DocumentType string              `db:"document_type" json:"documentType"`
	FilePath     string              `db:"file_path" json:"filePath"`
	FileName     string              `db:"file_name" json:"fileName"`
	FileSize     int64               `db:"file_size" json:"fileSize"`
	MimeType     string              `db:"mime_type" json:"mimeType"`
	Status       domain.ReviewStatus `db:"status" json:"status"`
	AdminNote    *string             `db:"admin_note" json:"adminNote"`
	ReviewedBy   *uuid.UUID          `db:"reviewed_by" json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time          `db:"reviewed_at" json:"reviewedAt,omitempty"`
	UploadedAt   time.Time           `db:"uploaded_at" json:"uploadedAt"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updatedAt"`
}

// FormRecord is an admin-uploaded admission form for a student
type FormRecord struct {
	ID         uuid.UUID `db:"id" json:"id"`
	StudentID  uuid.UUID `db:"student_id" json:"studentId"`
	FormName   string    `db:"form_name" json:"formName"`
	ExamType   string    `db:"exam_type" json:"examType"`
	Round      *string   `db:"round" json:"round"`
	FilePath   string    `db:"file_path" json:"filePath"`
	FileName   string    `db:"file_name" json:"fileName"`
	FileSize   int64     `db:"file_size" json:"fileSize"`
	MimeType   string    `db:"mime_type" json:"mimeType"`
	UploadedBy uuid.UUID `db:"uploaded_by" json:"uploadedBy"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
