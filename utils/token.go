package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token scopes. A widget token only authorizes grid fetches; the admin
// scope is required for settings writes.
const (
	ScopeWidget = "widget"
	ScopeAdmin  = "admin"
)

// TokenClaims is the JWT payload for both widget and admin tokens.
type TokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateWidgetToken mints the short-lived token embedded in a rendered
// grid shell. Grid fetch requests must carry it back.
func GenerateWidgetToken() (string, error) {
	return generateToken(ScopeWidget, widgetExpiry())
}

// GenerateAdminToken mints an admin token for the settings endpoints.
func GenerateAdminToken() (string, error) {
	expiryStr := os.Getenv("JWT_EXPIRY")
	if expiryStr == "" {
		expiryStr = "24h"
	}
	duration, err := time.ParseDuration(expiryStr)
	if err != nil {
		duration = 24 * time.Hour
	}
	return generateToken(ScopeAdmin, duration)
}

func widgetExpiry() time.Duration {
	expiryStr := os.Getenv("WIDGET_TOKEN_EXPIRY")
	if expiryStr == "" {
		return 12 * time.Hour
	}
	duration, err := time.ParseDuration(expiryStr)
	if err != nil {
		return 12 * time.Hour
	}
	return duration
}

func generateToken(scope string, duration time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set in environment")
	}

	claims := TokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "modefilter-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies a token and returns its claims.
func ValidateToken(tokenString string) (*TokenClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ExtractTokenFromHeader extracts a token from an Authorization header.
// Format: "Bearer <token>"
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is empty")
	}

	const bearerPrefix = "Bearer "
	if len(authHeader) < len(bearerPrefix) {
		return "", errors.New("invalid authorization header format")
	}

	if authHeader[:len(bearerPrefix)] != bearerPrefix {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return "", errors.New("token is empty")
	}

	return token, nil
}
