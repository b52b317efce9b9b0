package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and verifies the cookie value that carries a session ID,
// HMAC'd with the configured session secret.
type TokenCodec struct{ hmac []byte }

func NewTokenCodec(secret string) *TokenCodec { return &TokenCodec{hmac: []byte(secret)} }

type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

func (c *TokenCodec) Issue(sessionID string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		SID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gradeflow",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(12 * time.Hour)),
		},
	})
	return t.SignedString(c.hmac)
}

// Parse returns the session ID carried by a token. Any tampered, expired,
// or malformed token reads as no session.
func (c *TokenCodec) Parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.hmac, nil
	})
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.SID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return cl.SID, nil
}
