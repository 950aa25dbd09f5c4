package services

import (
	"time"

	"notable/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is the absolute lifetime of an issued token. There is no
// revocation list; tokens are invalidated by expiry only.
const tokenTTL = 7 * 24 * time.Hour

// AuthService hashes passwords and issues/verifies the signed bearer tokens
// that carry identity, tenant, and role.
type AuthService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

type authService struct {
	jwtSecret []byte
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(jwtSecret string) AuthService {
	return &authService{jwtSecret: []byte(jwtSecret)}
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash. A
// malformed hash verifies as false rather than surfacing an error.
func (s *authService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken signs an HS256 token embedding user id, tenant id, role, and
// email, with a 7-day expiration.
func (s *authService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   user.ID.String(),
		TenantID: user.TenantID.String(),
		Role:     string(user.Role),
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken checks signature and expiration and requires all four
// identity claims to be present and non-empty. A structurally valid token
// with a stripped claim is rejected the same way as a forged one.
func (s *authService) ValidateToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" || claims.TenantID == "" || claims.Role == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
