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

// FormController handles admission forms
type FormController struct {
	formService *services.FormService
	limits      services.UploadLimits
	logger      zerolog.Logger
}

// NewFormController creates a new FormController
func NewFormController(formService *services.FormService, limits services.UploadLimits, logger zerolog.Logger) *FormController {
	return &FormController{formService: formService, limits: limits, logger: logger}
}

func (c *FormController) list(ctx *gin.Context, studentID uuid.UUID) {
	forms, err := c.formService.ListForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: forms})
}

// StudentList lists the signed-in student's forms
// @Summary List own forms
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.FormRecord}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/forms [get]
func (c *FormController) StudentList(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	c.list(ctx, caller.ID)
}

// Download returns a short-lived link to one of the student's forms
// @Summary Download own form
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 200 {object} dto.APIResponse{data=dto.SignedURLResponse}
// @Failure 403 {object} dto.ErrorResponse "Form belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /student/forms/{formId}/download [get]
func (c *FormController) Download(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	formID, ok := parseUUIDParam(ctx, "formId")
	if !ok {
		return
	}

	link, err := c.formService.DownloadURL(ctx.Request.Context(), caller, formID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: link})
}

// AdminList lists a student's forms
// @Summary List student forms
// @Tags admin-forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.FormRecord}
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/students/{id}/forms [get]
func (c *FormController) AdminList(ctx *gin.Context) {
	studentID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	c.list(ctx, studentID)
}

// Upload stores a form for a student
// @Summary Upload form
// @Tags admin-forms
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param formName formData string true "Form name"
// @Param examType formData string true "Exam type"
// @Param round formData string false "Counselling round"
// @Param file formData file true "Form file"
// @Success 201 {object} dto.APIResponse{data=models.FormRecord}
// @Failure 400 {object} dto.ErrorResponse "Validation error, file type not allowed or file too large"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id}/forms [post]
func (c *FormController) Upload(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	studentID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UploadFormRequest
	if !middleware.Bind(ctx, &req) {
		return
	}

	file, closer, ok := formFile(ctx)
	if !ok {
		return
	}
	defer closer.Close()

	form, err := c.formService.Upload(ctx.Request.Context(), studentID, caller.ID, req, file, c.limits)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentId", studentID.String()).Msg("Form upload rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: form})
}

// Delete removes a form
// @Summary Delete form
// @Tags admin-forms
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /admin/forms/{formId} [delete]
func (c *FormController) Delete(ctx *gin.Context) {
	formID, ok := parseUUIDParam(ctx, "formId")
	if !ok {
		return
	}

	if err := c.formService.Delete(ctx.Request.Context(), formID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
