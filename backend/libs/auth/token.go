package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"evzone/backend/libs/access"
)

var (
	// ErrMissingUserID is returned when a token is requested for an anonymous profile.
	ErrMissingUserID = errors.New("token: user id is required")
	// ErrInvalidClaims is returned when a parsed token does not carry console claims.
	ErrInvalidClaims = errors.New("token: invalid claims")
)

// Claims represents the JWT payload shared by the console and the resource services.
type Claims struct {
	UserID          string                 `json:"user_id"`
	Role            access.Role            `json:"role"`
	OwnerCapability access.OwnerCapability `json:"owner_capability,omitempty"`
	ImpersonatorID  string                 `json:"impersonator_id,omitempty"`
	Scope           *access.Scope          `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenService handles JWT creation and validation.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

// NewTokenService returns configured token service.
func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}
	return &TokenService{secret: []byte(secret), expiresIn: expiresIn, now: time.Now}
}

// GenerateToken issues a JWT for the acting profile. impersonator and scope are optional.
func (t *TokenService) GenerateToken(profile access.UserProfile, impersonator *access.UserProfile, scope *access.Scope) (string, error) {
	if profile.ID == "" {
		return "", ErrMissingUserID
	}
	if !profile.Role.Valid() {
		return "", access.ErrUnknownRole
	}

	now := t.now().UTC()
	claims := Claims{
		UserID:          profile.ID,
		Role:            profile.Role,
		OwnerCapability: profile.OwnerCapability,
		Scope:           scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiresIn)),
		},
	}
	if impersonator != nil {
		claims.ImpersonatorID = impersonator.ID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken verifies and decodes JWT.
func (t *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("token: unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
