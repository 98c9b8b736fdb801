package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Token audiences. Each guard only accepts tokens minted for its audience.
const (
	AudienceUser     = "user"
	AudienceProvider = "provider"
	AudienceAdmin    = "admin"
)

// TokenManager issues and verifies HS256 tokens with per-audience secrets.
// It is constructed once from config and injected wherever tokens are
// handled.
type TokenManager struct {
	secrets map[string][]byte
}

// NewTokenManager builds a TokenManager. adminSecret may equal the shared
// secret when no dedicated admin secret is configured.
func NewTokenManager(sharedSecret, adminSecret string) *TokenManager {
	return &TokenManager{
		secrets: map[string][]byte{
			AudienceUser:     []byte(sharedSecret),
			AudienceProvider: []byte(sharedSecret),
			AudienceAdmin:    []byte(adminSecret),
		},
	}
}

// Issue creates a signed token with the given subject for one audience.
func (m *TokenManager) Issue(subject, audience string, duration time.Duration) (string, error) {
	secret, ok := m.secrets[audience]
	if !ok {
		return "", fmt.Errorf("unknown token audience %q", audience)
	}
	claims := jwt.MapClaims{
		"sub": subject,
		"aud": audience,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ExtractSubject validates a token against the audience's secret and
// returns the subject claim. Signature, expiry, and audience mismatches all
// fail here.
func (m *TokenManager) ExtractSubject(tokenString, audience string) (string, error) {
	secret, ok := m.secrets[audience]
	if !ok {
		return "", fmt.Errorf("unknown token audience %q", audience)
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if aud, _ := claims["aud"].(string); aud != audience {
		return "", errors.New("token audience mismatch")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
