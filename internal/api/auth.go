package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var errMissingToken = errors.New("authorization header is empty")

type userKey struct{}

// WithUser stores the authenticated subject in the context
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the authenticated subject, if any
func UserFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userKey{}).(string); ok {
		return userID
	}
	return ""
}

// Authenticator validates HMAC-signed JWT bearer tokens
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an authenticator. An empty secret disables auth.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Enabled reports whether a signing secret is configured
func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// Authenticate validates the Authorization header and returns the subject
func (a *Authenticator) Authenticate(authHeader string) (string, error) {
	tokenString, err := extractBearer(authHeader)
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID, nil
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub, nil
	}
	return "", fmt.Errorf("user_id not found in token")
}

// extractBearer accepts "Bearer <token>" or a bare token
func extractBearer(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.Fields(authHeader)
	switch len(parts) {
	case 1:
		return parts[0], nil
	case 2:
		if !strings.EqualFold(parts[0], "bearer") {
			return "", fmt.Errorf("invalid authorization header format")
		}
		return parts[1], nil
	default:
		return "", fmt.Errorf("invalid authorization header format")
	}
}
