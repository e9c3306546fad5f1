package middleware

import (
	"strings"

	appauth "github.com/futureedge/counselling/internal/app/auth"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the auth gates
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware gates admin and student routes
type AuthMiddleware struct {
	jwtService *auth.JWTService
	authz      *appauth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authz *appauth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		authz:      authz,
	}
}

// tokenFromRequest reads the bearer token. A bare JWT without the Bearer
// prefix is accepted for Swagger UI.
func tokenFromRequest(c *gin.Context) (string, error) {
	header := strings.Trim(strings.TrimSpace(c.GetHeader("Authorization")), "\"'")
	if header == "" {
		return "", apperrors.NewCustomError(apperrors.ErrUnauthorized, "Authentication required")
	}
	if strings.Count(header, ".") == 2 && !strings.Contains(header, " ") {
		return header, nil
	}
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return "", apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid token format")
	}
	return token, nil
}

func (m *AuthMiddleware) authenticate(c *gin.Context, audience string) (uuid.UUID, bool) {
	tokenString, err := tokenFromRequest(c)
	if err != nil {
		abortWithError(c, err)
		return uuid.Nil, false
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		abortWithError(c, err)
		return uuid.Nil, false
	}

	if !claims.HasAudience(auth.AudienceAdmin) && !claims.HasAudience(auth.AudienceStudent) {
		abortWithError(c, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid token"))
		return uuid.Nil, false
	}
	if !claims.HasAudience(audience) {
		abortWithError(c, apperrors.NewForbiddenError("You don't have sufficient permissions for this operation"))
		return uuid.Nil, false
	}

	userID, err := claims.UserID()
	if err != nil {
		abortWithError(c, err)
		return uuid.Nil, false
	}
	return userID, true
}

// AdminAuth admits callers with a valid token whose subject holds the admin
// role. The role is looked up on every request.
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := m.authenticate(c, auth.AudienceAdmin)
		if !ok {
			return
		}
		if err := m.authz.ValidateAdmin(c.Request.Context(), userID); err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, domain.RoleAdmin)
		c.Next()
	}
}

// StudentAuth admits callers presenting a valid student session token
func (m *AuthMiddleware) StudentAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := m.authenticate(c, auth.AudienceStudent)
		if !ok {
			return
		}
		if err := m.authz.ValidateStudent(c.Request.Context(), userID); err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, domain.RoleStudent)
		c.Next()
	}
}

// CurrentUser returns the id and role set by one of the gates
func CurrentUser(c *gin.Context) (uuid.UUID, domain.Role, bool) {
	rawID, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, "", false
	}
	id, ok := rawID.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	role, _ := c.Get(ContextRole)
	r, _ := role.(domain.Role)
	return id, r, true
}
