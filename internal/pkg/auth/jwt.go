package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token audiences. The audience tells the gates which population a token
// was issued to.
const (
	AudienceAdmin   = "admin"
	AudienceStudent = "student"
	AudienceFile    = "file"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey         string
	AdminTokenExp     time.Duration
	StudentSessionExp time.Duration
	TokenIssuer       string
}

// JWTService issues and validates admin bearer tokens and student session tokens
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config, now: time.Now}
}

// Claims defines JWT token content
type Claims struct {
	Email              string `json:"email,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject as a uuid
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, apperrors.ErrTokenInvalid
	}
	return id, nil
}

// HasAudience reports whether the token was issued for aud
func (c *Claims) HasAudience(aud string) bool {
	for _, a := range c.Audience {
		if a == aud {
			return true
		}
	}
	return false
}

func (s *JWTService) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) registered(subject, audience string, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.config.TokenIssuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		ID:        uuid.New().String(),
	}
}

// GenerateAdminToken creates an admin bearer token. Holding one does not make
// the caller an admin; the role is still looked up per request.
func (s *JWTService) GenerateAdminToken(adminID uuid.UUID, email string) (string, int, error) {
	claims := &Claims{
		Email:            email,
		RegisteredClaims: s.registered(adminID.String(), AudienceAdmin, s.config.AdminTokenExp),
	}
	token, err := s.sign(claims)
	if err != nil {
		return "", 0, err
	}
	return token, int(s.config.AdminTokenExp.Seconds()), nil
}

// GenerateStudentSession creates the signed session token a student presents
// on every student-facing request.
func (s *JWTService) GenerateStudentSession(studentID uuid.UUID, registrationNumber string) (string, int, error) {
	claims := &Claims{
		RegistrationNumber: registrationNumber,
		RegisteredClaims:   s.registered(studentID.String(), AudienceStudent, s.config.StudentSessionExp),
	}
	token, err := s.sign(claims)
	if err != nil {
		return "", 0, err
	}
	return token, int(s.config.StudentSessionExp.Seconds()), nil
}

// ValidateToken validates a token
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithIssuer(s.config.TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(s.config.SecretKey), nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", apperrors.ErrUnauthorized
	}

	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return strings.TrimSpace(authHeader[len(prefix):]), nil
	}

	return "", apperrors.ErrTokenInvalid
}
