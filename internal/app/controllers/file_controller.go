package controllers

import (
	"mime"
	"net/http"
	"path"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/gin-gonic/gin"
)

// FileController issues signed URLs and serves the files behind them
type FileController struct {
	fileService *services.FileService
}

// NewFileController creates a new FileController
func NewFileController(fileService *services.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// SignedURL returns a time-boxed link to a stored file
// @Summary Create signed URL
// @Description Students may only sign paths recorded against their own id; admins may sign any known path
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SignedURLRequest true "File path"
// @Success 200 {object} dto.APIResponse{data=dto.SignedURLResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "File belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /student/files/signed-url [post]
// @Router /admin/files/signed-url [post]
func (c *FileController) SignedURL(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req dto.SignedURLRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	link, err := c.fileService.SignedURL(ctx.Request.Context(), caller, req.FilePath, req.Kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: link})
}

// Serve streams the file a signed URL grants
// @Summary Download file
// @Tags files
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 401 {object} dto.ErrorResponse "Link expired or invalid"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /files/{token} [get]
func (c *FileController) Serve(ctx *gin.Context) {
	obj, err := c.fileService.Open(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer obj.Close()

	name := path.Base(obj.Name)
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		ctx.Header("Content-Type", ct)
	}
	ctx.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": name}))
	ctx.Header("Cache-Control", "private, no-store")
	http.ServeContent(ctx.Writer, ctx.Request, name, obj.ModTime, obj)
}
