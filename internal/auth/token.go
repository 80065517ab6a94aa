package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	model "refashion/internal/models"
)

// DefaultDemoSecret signs demo tokens when no secret is configured
const DefaultDemoSecret = "refashion-demo-secret"

const demoTokenTTL = 24 * time.Hour

// TokenMinter signs the offline demo tokens handed out when the backend cannot be reached
type TokenMinter struct {
	secret []byte
}

// NewTokenMinter creates a minter for secret, falling back to DefaultDemoSecret
func NewTokenMinter(secret string) *TokenMinter {
	if secret == "" {
		secret = DefaultDemoSecret
	}
	return &TokenMinter{secret: []byte(secret)}
}

// Mint signs an HS256 demo token for user
func (m *TokenMinter) Mint(user model.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"type":  "demo",
		"iat":   now.Unix(),
		"exp":   now.Add(demoTokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign demo token: %w", err)
	}
	return signed, nil
}

// Verify parses a demo token and returns its claims
func (m *TokenMinter) Verify(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: invalid demo token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("auth: invalid demo token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("auth: unexpected claims type %T", parsed.Claims)
	}
	if tokenType, _ := claims["type"].(string); tokenType != "demo" {
		return nil, fmt.Errorf("auth: token type %q is not demo", tokenType)
	}
	return claims, nil
}
