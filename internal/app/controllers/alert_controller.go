package controllers

import (
	"net/http"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AlertController lets admins raise and resolve student alerts
type AlertController struct {
	alertService *services.AlertService
}

// NewAlertController creates a new AlertController
func NewAlertController(alertService *services.AlertService) *AlertController {
	return &AlertController{alertService: alertService}
}

// Create raises an alert on a student's dashboard
// @Summary Create alert
// @Tags admin-alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.CreateAlertRequest true "Alert"
// @Success 201 {object} dto.APIResponse{data=models.StudentAlert}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id}/alerts [post]
func (c *AlertController) Create(ctx *gin.Context) {
	studentID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAlertRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	alert, err := c.alertService.Create(ctx.Request.Context(), studentID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: alert})
}

// Resolve marks an alert resolved
// @Summary Resolve alert
// @Tags admin-alerts
// @Security BearerAuth
// @Param alertId path string true "Alert ID"
// @Success 204 "Resolved"
// @Failure 404 {object} dto.ErrorResponse "Alert not found"
// @Router /admin/alerts/{alertId}/resolve [patch]
func (c *AlertController) Resolve(ctx *gin.Context) {
	alertID, ok := parseUUIDParam(ctx, "alertId")
	if !ok {
		return
	}

	if err := c.alertService.Resolve(ctx.Request.Context(), alertID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
