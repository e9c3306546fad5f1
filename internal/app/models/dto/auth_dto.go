package dto

import "github.com/google/uuid"

// Messages returned verbatim by the credential endpoints
const (
	MessageInvalidLogin    = "Invalid registration number or password"
	MessageResetRequested  = "If this registration number exists, a password reset email has been sent."
	MessageResetLinkBad    = "Invalid or expired reset link"
	MessageResetLinkOld    = "This reset link has expired. Please request a new one."
	MessageResetLinkUsed   = "This reset link has already been used"
	MessagePasswordUpdated = "Password updated successfully"
)

// StudentLoginRequest is the student sign-in body
type StudentLoginRequest struct {
	RegistrationNumber string `json:"registrationNumber" binding:"required,notblank" example:"FE-010"`
	Password           string `json:"password" binding:"required" example:"Welcome@123"`
}

// StudentLoginResponse is returned on a successful student login
type StudentLoginResponse struct {
	ID                 uuid.UUID `json:"id"`
	RegistrationNumber string    `json:"registrationNumber" example:"FE-010"`
	Email              string    `json:"email" example:"asha@example.com"`
	FullName           string    `json:"fullName" example:"Asha Patil"`
	MustChangePassword bool      `json:"mustChangePassword" example:"true"`
	Token              string    `json:"token"`
	ExpiresIn          int       `json:"expiresIn" example:"86400"`
}

// ForgotPasswordRequest starts the reset flow
type ForgotPasswordRequest struct {
	RegistrationNumber string `json:"registrationNumber" binding:"required,notblank" example:"FE-010"`
	CallbackURL        string `json:"callbackUrl" binding:"omitempty,url" example:"https://portal.example.com"`
}

// ResetPasswordRequest consumes a reset token
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePasswordRequest sets a new password for the signed-in student
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// AdminLoginRequest is the console sign-in body
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@futureedge.local"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse carries the admin bearer token
type AdminLoginResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expiresIn" example:"43200"`
}
