package controllers

import (
	"net/http"
	"strings"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/futureedge/counselling/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminStudentController handles student management by admins
type AdminStudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewAdminStudentController creates a new AdminStudentController
func NewAdminStudentController(studentService *services.StudentService, logger zerolog.Logger) *AdminStudentController {
	return &AdminStudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// CreateStudent enrols a student
// @Summary Create student
// @Description Creates a student with a temporary password; the student must change it at first login
// @Tags admin-students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=dto.StudentSummary}
// @Failure 400 {object} dto.ErrorResponse "Validation error or duplicate registration number / email"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/students [post]
func (c *AdminStudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewStudentSummary(student)})
}

// ListStudents lists students
// @Summary List students
// @Tags admin-students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match on name, registration number or email"
// @Param stage query string false "Exact admission stage"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.StudentSummary}}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/students [get]
func (c *AdminStudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := models.StudentListFilter{
		Search: strings.TrimSpace(ctx.Query("search")),
		Stage:  strings.TrimSpace(ctx.Query("stage")),
		Page:   page,
		Size:   size,
	}

	items, pagination, err := c.studentService.ListStudents(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{Items: items, Pagination: pagination}})
}

// BulkUpdateStage moves many students to one stage
// @Summary Bulk stage update
// @Description Updates each listed student independently; unknown ids are skipped. Returns the number updated.
// @Tags admin-students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkStageUpdateRequest true "Student ids and target stage"
// @Success 200 {object} dto.APIResponse{data=dto.BulkStageUpdateResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/students [put]
func (c *AdminStudentController) BulkUpdateStage(ctx *gin.Context) {
	var req dto.BulkStageUpdateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	count, err := c.studentService.BulkSetStage(ctx.Request.Context(), req.StudentIDs, req.AdmissionStage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.BulkStageUpdateResponse{UpdatedCount: count}})
}

// GetStudent returns the admin detail view of one student
// @Summary Get student
// @Tags admin-students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentDetailResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id} [get]
func (c *AdminStudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.studentService.GetStudentDetail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: detail})
}

// UpdateStudent edits one student, including the admission stage
// @Summary Update student
// @Description Sets the admission stage and/or profile fields. Any stage in the catalog may be set, forwards or backwards.
// @Tags admin-students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StudentSummary}
// @Failure 400 {object} dto.ErrorResponse "Validation error or unknown stage"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id} [put]
func (c *AdminStudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewStudentSummary(student)})
}
