package controllers

import (
	"net/http"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StudentController serves the signed-in student's own records
type StudentController struct {
	studentService   *services.StudentService
	dashboardService *services.DashboardService
	logger           zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, dashboardService *services.DashboardService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService:   studentService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Me returns the signed-in student
// @Summary Get own profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentSummary}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/me [get]
func (c *StudentController) Me(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), caller.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewStudentSummary(student)})
}

// UpdateProfile edits the student's own profile
// @Summary Update own profile
// @Description Contact numbers must be exactly 10 digits; empty values clear them
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.StudentSummary}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateProfile(ctx.Request.Context(), caller.ID, req.ProfileUpdate())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewStudentSummary(student)})
}

// Dashboard returns the student home snapshot
// @Summary Get dashboard
// @Description Student summary, stage progress, what's next, open alerts and the latest published notices
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	dash, err := c.dashboardService.Get(ctx.Request.Context(), caller.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dash})
}

// Stage returns the student's admission stage
// @Summary Get admission stage
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StageResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/stage [get]
func (c *StudentController) Stage(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	stage, err := c.studentService.GetStage(ctx.Request.Context(), caller.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stage})
}
