package dto

import (
	"time"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/domain"
)

// UploadDocumentRequest is the multipart form of a document upload. The file
// itself travels in the "file" part.
type UploadDocumentRequest struct {
	DocumentType string `form:"documentType" binding:"required,doctype" example:"aadhaar"`
}

// ReviewDocumentRequest records an admin verdict
type ReviewDocumentRequest struct {
	Status    string  `json:"status" binding:"required,oneof=approved re-upload" example:"re-upload"`
	AdminNote *string `json:"adminNote" binding:"omitempty,max=1000" example:"Scan is blurred, please upload again"`
}

// DocumentListResponse lists a student's documents next to the catalog
type DocumentListResponse struct {
	Documents     []models.DocumentRecord   `json:"documents"`
	DocumentTypes []domain.DocumentTypeInfo `json:"documentTypes"`
}

// SignedURLRequest asks for a temporary link to a stored file
type SignedURLRequest struct {
	FilePath string `json:"filePath" binding:"required,notblank" example:"4f0c.../aadhaar-1718000000000.png"`
	Kind     string `json:"kind" binding:"omitempty,oneof=document form" example:"document"`
}

// SignedURLResponse is a time-boxed capability URL
type SignedURLResponse struct {
	SignedURL string    `json:"signedUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadFormRequest is the multipart form of an admin form upload
type UploadFormRequest struct {
	FormName string `form:"formName" binding:"required,notblank,max=200" example:"CAP Round 1 Option Form"`
	ExamType string `form:"examType" binding:"required,notblank,max=50" example:"MHT-CET"`
	Round    string `form:"round" binding:"omitempty,max=50" example:"CAP-I"`
}
