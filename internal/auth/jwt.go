package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session tokens are HS256-signed JWTs carrying the user id as the subject.
// The secret comes from the environment, with a development fallback. It is
// resolved on every use, not at package init: main loads .env after this
// package is initialized, and a secret set there must still take effect.
func secretFromEnv() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-only-secret-change-me")
}

const (
	// DefaultTokenTTL is the session lifetime for a normal login.
	DefaultTokenTTL = 72 * time.Hour
	// RememberMeTokenTTL is used when the client asked to stay signed in.
	RememberMeTokenTTL = 30 * 24 * time.Hour
)

// GenerateToken creates a session JWT for the given user ID.
func GenerateToken(userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretFromEnv())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken parses and validates a session JWT and returns the user ID
// (subject) if the token is valid.
func ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretFromEnv(), nil
	})
	if err != nil {
		return "", err // expired, malformed, bad signature
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return "", errors.New("invalid subject claim")
		}
		return sub, nil
	}

	return "", errors.New("invalid token")
}
