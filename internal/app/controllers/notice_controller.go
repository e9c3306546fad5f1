package controllers

import (
	"net/http"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NoticeController handles announcements
type NoticeController struct {
	noticeService *services.NoticeService
	logger        zerolog.Logger
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService *services.NoticeService, logger zerolog.Logger) *NoticeController {
	return &NoticeController{noticeService: noticeService, logger: logger}
}

// StudentList returns the latest published notices
// @Summary List notices
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Notice}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/notices [get]
func (c *NoticeController) StudentList(ctx *gin.Context) {
	notices, err := c.noticeService.ListPublished(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notices})
}

// AdminList lists all notices
// @Summary List all notices
// @Tags admin-notices
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft or published"
// @Success 200 {object} dto.APIResponse{data=[]models.Notice}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/notices [get]
func (c *NoticeController) AdminList(ctx *gin.Context) {
	status := ctx.Query("status")
	if status != "" && status != "draft" && status != "published" {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "status must be one of: draft, published").WithField("status")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	notices, err := c.noticeService.List(ctx.Request.Context(), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notices})
}

// Create adds a notice
// @Summary Create notice
// @Tags admin-notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NoticeRequest true "Notice"
// @Success 201 {object} dto.APIResponse{data=models.Notice}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/notices [post]
func (c *NoticeController) Create(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req dto.NoticeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	notice, err := c.noticeService.Create(ctx.Request.Context(), caller.ID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: notice})
}

// Update replaces a notice
// @Summary Update notice
// @Tags admin-notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notice ID"
// @Param request body dto.NoticeRequest true "Notice"
// @Success 200 {object} dto.APIResponse{data=models.Notice}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /admin/notices/{id} [put]
func (c *NoticeController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.NoticeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	notice, err := c.noticeService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notice})
}

// Delete removes a notice
// @Summary Delete notice
// @Tags admin-notices
// @Security BearerAuth
// @Param id path string true "Notice ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /admin/notices/{id} [delete]
func (c *NoticeController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noticeService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
