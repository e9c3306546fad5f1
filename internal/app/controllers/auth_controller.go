package controllers

import (
	"net/http"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// StudentLogin handles student login
// @Summary Student login
// @Description Authenticates a student by registration number and password and returns a signed session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.StudentLoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid registration number or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req.RegistrationNumber, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("registrationNumber", req.RegistrationNumber).Msg("Student login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// AdminLogin handles admin login
// @Summary Admin login
// @Description Authenticates an admin by email and password and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.AdminLogin(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Admin login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ForgotPassword starts a password reset
// @Summary Request password reset
// @Description Emails a single-use reset link to the student. The response is the same whether or not the registration number exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Registration number"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Request accepted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/student/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.authService.RequestReset(ctx.Request.Context(), req.RegistrationNumber, req.CallbackURL)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: msg}})
}

// ResetPassword completes a password reset
// @Summary Reset password
// @Description Consumes a reset token and sets a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid, expired or used reset link"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/student/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ConsumeReset(ctx.Request.Context(), req.Token, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: dto.MessagePasswordUpdated}})
}

// ChangePassword replaces the temporary password after first login
// @Summary Change password
// @Description Sets a new password for the signed-in student and clears the must-change flag
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.FirstLoginPasswordChange(ctx.Request.Context(), caller.ID, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: dto.MessagePasswordUpdated}})
}
