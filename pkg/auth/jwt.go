package auth

import (
	"fmt"
	"time"

	apperrors "talentnet-backend/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity asserted by a caller's token
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenValidator parses and validates bearer tokens
type TokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator creates a token validator
func NewTokenValidator(secret, issuer string) *TokenValidator {
	return &TokenValidator{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Validate parses the token and returns its claims. Only HMAC signatures
// are accepted.
func (v *TokenValidator) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}
	if !token.Valid || claims.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("invalid token claims")
	}
	return claims, nil
}

// IssueToken mints a token for a user; used by tests and local tooling
func (v *TokenValidator) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
