package middleware

import (
	"net/http"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/gin-gonic/gin"
)

// BindJSON binds and validates the JSON body into obj. On failure it writes a
// 400 with per-field messages and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// Bind binds form or query values into obj the same way
func Bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
