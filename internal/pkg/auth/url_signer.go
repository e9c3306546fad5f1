package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

// FileClaims grant read access to one stored object until expiry.
type FileClaims struct {
	Bucket string `json:"bkt"`
	Path   string `json:"path"`
	jwt.RegisteredClaims
}

// URLSigner issues time-boxed capability URLs for stored objects.
type URLSigner struct {
	secret  []byte
	issuer  string
	baseURL string
	now     func() time.Time
}

// NewURLSigner creates a signer whose URLs point at baseURL + "/api/v1/files/{token}".
func NewURLSigner(secret, issuer, baseURL string) *URLSigner {
	return &URLSigner{
		secret:  []byte(secret),
		issuer:  issuer,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Sign returns a signed URL for bucket/path valid for ttl.
func (s *URLSigner) Sign(bucket, path string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := &FileClaims{
		Bucket: bucket,
		Path:   path,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{AudienceFile},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign file url: %w", err)
	}

	return s.baseURL + "/api/v1/files/" + url.PathEscape(token), expiresAt, nil
}

// Verify validates a token taken from a signed URL.
func (s *URLSigner) Verify(token string) (*FileClaims, error) {
	claims := &FileClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(AudienceFile),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	if claims.Bucket == "" || claims.Path == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}
