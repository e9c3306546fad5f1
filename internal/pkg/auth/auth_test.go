package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWT(now time.Time) *JWTService {
	s := NewJWTService(JWTConfig{
		SecretKey:         "test-secret",
		AdminTokenExp:     time.Hour,
		StudentSessionExp: 2 * time.Hour,
		TokenIssuer:       "counselling.test",
	})
	s.now = func() time.Time { return now }
	return s
}

func TestJWTService_StudentSessionRoundTrip(t *testing.T) {
	now := time.Now()
	svc := newTestJWT(now)
	id := uuid.New()

	token, expiresIn, err := svc.GenerateStudentSession(id, "FE-010")
	require.NoError(t, err)
	assert.Equal(t, 7200, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasAudience(AudienceStudent))
	assert.False(t, claims.HasAudience(AudienceAdmin))
	assert.Equal(t, "FE-010", claims.RegistrationNumber)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWTService_ValidateToken_Failures(t *testing.T) {
	issued := time.Now().Add(-3 * time.Hour)
	old := newTestJWT(issued)
	expired, _, err := old.GenerateAdminToken(uuid.New(), "admin@example.com")
	require.NoError(t, err)

	svc := newTestJWT(time.Now())
	valid, _, err := svc.GenerateAdminToken(uuid.New(), "admin@example.com")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AdminTokenExp: time.Hour, TokenIssuer: "counselling.test"})
	foreign, _, err := other.GenerateAdminToken(uuid.New(), "x@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", apperrors.ErrTokenInvalid},
		{"garbage", "not.a.jwt", apperrors.ErrTokenInvalid},
		{"expired", expired, apperrors.ErrTokenExpired},
		{"wrong key", foreign, apperrors.ErrTokenInvalid},
		{"tampered", valid[:len(valid)-2] + "xx", apperrors.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("bearer   xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = ExtractBearerToken("Basic Zm9vOmJhcg==")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Welcome@123")
	require.NoError(t, err)
	assert.NotEqual(t, "Welcome@123", hash)
	assert.True(t, h.Verify(hash, "Welcome@123"))
	assert.False(t, h.Verify(hash, "wrong"))

	again, err := h.Hash("Welcome@123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes are salted")

	assert.Equal(t, BcryptCost, NewBcryptHasher(0).cost)
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestURLSigner(t *testing.T) {
	signer := NewURLSigner("test-secret", "counselling.test", "http://localhost:8080/")

	signed, expiresAt, err := signer.Sign("student-documents", "abc/aadhaar-1.png", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed, "http://localhost:8080/api/v1/files/"))
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 5*time.Second)

	token := strings.TrimPrefix(signed, "http://localhost:8080/api/v1/files/")
	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "student-documents", claims.Bucket)
	assert.Equal(t, "abc/aadhaar-1.png", claims.Path)

	// a session token is not a file capability
	sessions := newTestJWT(time.Now())
	sessions.config.SecretKey = "test-secret"
	sessions.config.TokenIssuer = "counselling.test"
	session, _, err := sessions.GenerateStudentSession(uuid.New(), "FE-1")
	require.NoError(t, err)
	_, err = signer.Verify(session)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	signer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, _, err := signer.Sign("student-forms", "abc/1_form.pdf", time.Minute)
	require.NoError(t, err)
	signer.now = time.Now
	_, err = signer.Verify(strings.TrimPrefix(stale, "http://localhost:8080/api/v1/files/"))
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
