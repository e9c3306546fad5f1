// Package controllers handles HTTP request handling
package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uploadField is the multipart part carrying the file
const uploadField = "file"

// parseUUIDParam reads a path parameter as a uuid, writing a 400 if it is malformed
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+name).WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return uuid.Nil, false
	}
	return id, true
}

// currentCaller returns the caller established by the auth gate
func currentCaller(ctx *gin.Context) (services.Caller, bool) {
	id, role, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return services.Caller{}, false
	}
	return services.Caller{ID: id, Role: role}, true
}

// formFile opens the uploaded file part. The caller must close the returned file.
func formFile(ctx *gin.Context) (services.FileUpload, multipart.File, bool) {
	header, err := ctx.FormFile(uploadField)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required").WithField(uploadField)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return services.FileUpload{}, nil, false
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return services.FileUpload{}, nil, false
	}

	return services.FileUpload{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Content:  file,
	}, file, true
}
