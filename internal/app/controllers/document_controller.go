package controllers

import (
	"net/http"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DocumentController handles document upload, listing and review
type DocumentController struct {
	documentService *services.DocumentService
	studentLimits   services.UploadLimits
	adminLimits     services.UploadLimits
	logger          zerolog.Logger
}

// NewDocumentController creates a new DocumentController. Student and admin
// uploads are held to different limits.
func NewDocumentController(documentService *services.DocumentService, studentLimits, adminLimits services.UploadLimits, logger zerolog.Logger) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		studentLimits:   studentLimits,
		adminLimits:     adminLimits,
		logger:          logger,
	}
}

func (c *DocumentController) upload(ctx *gin.Context, studentID uuid.UUID, limits services.UploadLimits) {
	var req dto.UploadDocumentRequest
	if !middleware.Bind(ctx, &req) {
		return
	}

	file, closer, ok := formFile(ctx)
	if !ok {
		return
	}
	defer closer.Close()

	doc, err := c.documentService.Upload(ctx.Request.Context(), studentID, req.DocumentType, file, limits)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentId", studentID.String()).Str("documentType", req.DocumentType).Msg("Document upload rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: doc})
}

func (c *DocumentController) list(ctx *gin.Context, studentID uuid.UUID) {
	resp, err := c.documentService.ListForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// StudentUpload uploads a document for the signed-in student
// @Summary Upload own document
// @Description Stores a PNG or JPEG (max 5MB). Re-uploading a type replaces it and resets its review to pending.
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param documentType formData string true "Document type tag"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=models.DocumentRecord}
// @Failure 400 {object} dto.ErrorResponse "Unknown type, file type not allowed or file too large"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/documents [post]
func (c *DocumentController) StudentUpload(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	c.upload(ctx, caller.ID, c.studentLimits)
}

// StudentList lists the signed-in student's documents
// @Summary List own documents
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DocumentListResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/documents [get]
func (c *DocumentController) StudentList(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	c.list(ctx, caller.ID)
}

// AdminUpload uploads a document on a student's behalf
// @Summary Upload document for student
// @Description Stores a PDF, PNG or JPEG (max 10MB) for the student
// @Tags admin-documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param documentType formData string true "Document type tag"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=models.DocumentRecord}
// @Failure 400 {object} dto.ErrorResponse "Unknown type, file type not allowed or file too large"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id}/documents [post]
func (c *DocumentController) AdminUpload(ctx *gin.Context) {
	studentID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	c.upload(ctx, studentID, c.adminLimits)
}

// AdminList lists a student's documents
// @Summary List student documents
// @Tags admin-documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentListResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/students/{id}/documents [get]
func (c *DocumentController) AdminList(ctx *gin.Context) {
	studentID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	c.list(ctx, studentID)
}

// Review records an admin verdict on a document
// @Summary Review document
// @Tags admin-documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param documentId path string true "Document ID"
// @Param request body dto.ReviewDocumentRequest true "Verdict and optional note"
// @Success 200 {object} dto.APIResponse{data=models.DocumentRecord}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /admin/documents/{documentId} [patch]
func (c *DocumentController) Review(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	documentID, ok := parseUUIDParam(ctx, "documentId")
	if !ok {
		return
	}

	var req dto.ReviewDocumentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	doc, err := c.documentService.Review(ctx.Request.Context(), documentID, caller.ID, req.Status, req.AdminNote)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: doc})
}
