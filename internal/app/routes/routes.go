package routes

import (
	"net/http"

	"github.com/futureedge/counselling/internal/app/controllers"
	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Student      *controllers.StudentController
	AdminStudent *controllers.AdminStudentController
	Document     *controllers.DocumentController
	Form         *controllers.FormController
	File         *controllers.FileController
	Notice       *controllers.NoticeController
	Alert        *controllers.AlertController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/student/login", c.Auth.StudentLogin)
		auth.POST("/student/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/student/reset-password", c.Auth.ResetPassword)
		auth.POST("/admin/login", c.Auth.AdminLogin)
	}

	// Signed URLs carry their own authorization
	v1.GET("/files/:token", c.File.Serve)

	// --- Student routes ---
	student := v1.Group("/student")
	student.Use(authMiddleware.StudentAuth())
	{
		student.POST("/change-password", c.Auth.ChangePassword)
		student.GET("/me", c.Student.Me)
		student.PUT("/profile", c.Student.UpdateProfile)
		student.GET("/dashboard", c.Student.Dashboard)
		student.GET("/stage", c.Student.Stage)

		student.GET("/documents", c.Document.StudentList)
		student.POST("/documents", c.Document.StudentUpload)
		student.POST("/files/signed-url", c.File.SignedURL)

		student.GET("/forms", c.Form.StudentList)
		student.GET("/forms/:formId/download", c.Form.Download)

		student.GET("/notices", c.Notice.StudentList)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.AdminAuth())
	{
		students := admin.Group("/students")
		{
			students.POST("", c.AdminStudent.CreateStudent)
			students.GET("", c.AdminStudent.ListStudents)
			students.PUT("", c.AdminStudent.BulkUpdateStage)
			students.GET("/:id", c.AdminStudent.GetStudent)
			students.PUT("/:id", c.AdminStudent.UpdateStudent)

			students.GET("/:id/documents", c.Document.AdminList)
			students.POST("/:id/documents", c.Document.AdminUpload)
			students.GET("/:id/forms", c.Form.AdminList)
			students.POST("/:id/forms", c.Form.Upload)
			students.POST("/:id/alerts", c.Alert.Create)
		}

		admin.PATCH("/documents/:documentId", c.Document.Review)
		admin.POST("/files/signed-url", c.File.SignedURL)
		admin.DELETE("/forms/:formId", c.Form.Delete)
		admin.PATCH("/alerts/:alertId/resolve", c.Alert.Resolve)

		notices := admin.Group("/notices")
		{
			notices.GET("", c.Notice.AdminList)
			notices.POST("", c.Notice.Create)
			notices.PUT("/:id", c.Notice.Update)
			notices.DELETE("/:id", c.Notice.Delete)
		}
	}

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"status": "ok"}})
	})
}
