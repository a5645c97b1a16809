package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime is how long an issued bearer token stays valid.
const TokenLifetime = 24 * time.Hour

var ErrInvalidToken = errors.New("the bearer token is invalid or expired")

// secret returns the HMAC signing secret. TOKEN_SECRET must be set,
// there is no insecure fallback.
func secret() ([]byte, error) {
	s, ok := os.LookupEnv("TOKEN_SECRET")
	if !ok || s == "" {
		return nil, errors.New("the TOKEN_SECRET environment variable must be set")
	}

	return []byte(s), nil
}

// NewToken issues a signed bearer token for the user.
func NewToken(userID uuid.UUID) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	now := time.Now().In(time.UTC)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ParseToken verifies a bearer token and returns the user ID it was
// issued for.
func ParseToken(token string) (uuid.UUID, error) {
	key, err := secret()
	if err != nil {
		return uuid.Nil, err
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
