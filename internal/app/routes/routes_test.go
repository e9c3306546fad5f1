package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appauth "github.com/futureedge/counselling/internal/app/auth"
	"github.com/futureedge/counselling/internal/app/controllers"
	"github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/middleware"
	"github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/futureedge/counselling/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleTable map[uuid.UUID]domain.Role

func (r roleTable) HasRole(_ context.Context, id uuid.UUID, role domain.Role) (bool, error) {
	return r[id] == role, nil
}

func (r roleTable) Assign(context.Context, uuid.UUID, domain.Role) error { return nil }

// newTestRouter mounts every route. The services are nil, so only requests
// rejected before reaching a service may be sent.
func newTestRouter(t *testing.T, jwt *auth.JWTService, roles roleTable) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Setup())

	log := zerolog.Nop()
	limits := services.UploadLimits{MaxBytes: 1 << 20, AllowedTypes: []string{"image/png"}}
	c := Controllers{
		Auth:         controllers.NewAuthController(nil, log),
		Student:      controllers.NewStudentController(nil, nil, log),
		AdminStudent: controllers.NewAdminStudentController(nil, log),
		Document:     controllers.NewDocumentController(nil, limits, limits, log),
		Form:         controllers.NewFormController(nil, limits, log),
		File:         controllers.NewFileController(nil),
		Notice:       controllers.NewNoticeController(nil, log),
		Alert:        controllers.NewAlertController(nil),
	}

	router := gin.New()
	SetupRouter(router, c, middleware.NewAuthMiddleware(jwt, appauth.NewAuthorizationService(roles)))
	return router
}

func TestRouteGuards(t *testing.T) {
	jwt := auth.NewJWTService(auth.JWTConfig{
		SecretKey:         "test-secret",
		AdminTokenExp:     time.Hour,
		StudentSessionExp: time.Hour,
		TokenIssuer:       "counselling-test",
	})
	adminID, studentID := uuid.New(), uuid.New()
	router := newTestRouter(t, jwt, roleTable{adminID: domain.RoleAdmin, studentID: domain.RoleStudent})

	adminToken, _, err := jwt.GenerateAdminToken(adminID, "admin@example.com")
	require.NoError(t, err)
	studentToken, _, err := jwt.GenerateStudentSession(studentID, "FE-010")
	require.NoError(t, err)

	stageBody := `{"admissionStage":"Seat Allotment"}`
	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"health is public", http.MethodGet, "/api/v1/health", "", "", http.StatusOK},
		{"student cannot set stage", http.MethodPut, "/api/v1/admin/students/" + studentID.String(), studentToken, stageBody, http.StatusForbidden},
		{"student cannot bulk set stage", http.MethodPut, "/api/v1/admin/students", studentToken, `{"studentIds":["x"],"admissionStage":"Seat Allotment"}`, http.StatusForbidden},
		{"anonymous cannot set stage", http.MethodPut, "/api/v1/admin/students/" + studentID.String(), "", stageBody, http.StatusUnauthorized},
		{"admin token on student routes", http.MethodGet, "/api/v1/student/dashboard", adminToken, "", http.StatusForbidden},
		{"anonymous dashboard", http.MethodGet, "/api/v1/student/dashboard", "", "", http.StatusUnauthorized},
		{"malformed student id", http.MethodGet, "/api/v1/admin/students/not-a-uuid", adminToken, "", http.StatusBadRequest},
		{"unknown stage rejected at the boundary", http.MethodPut, "/api/v1/admin/students/" + studentID.String(), adminToken, `{"admissionStage":"Stage 9"}`, http.StatusBadRequest},
		{"empty bulk list rejected", http.MethodPut, "/api/v1/admin/students", adminToken, `{"studentIds":[],"admissionStage":"Seat Allotment"}`, http.StatusBadRequest},
		{"signed url needs a path", http.MethodPost, "/api/v1/student/files/signed-url", studentToken, `{}`, http.StatusBadRequest},
		{"login needs a registration number", http.MethodPost, "/api/v1/auth/student/login", "", `{"password":"x"}`, http.StatusBadRequest},
		{"review status must be settable", http.MethodPatch, "/api/v1/admin/documents/" + uuid.NewString(), adminToken, `{"status":"pending"}`, http.StatusBadRequest},
		{"reset needs a long password", http.MethodPost, "/api/v1/auth/student/reset-password", "", `{"token":"abc","newPassword":"short"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}
