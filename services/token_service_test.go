package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/stretchr/testify/assert"
)

func tokenTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret-do-not-use-in-production",
		JWTIssuer:   "mayas-bakery-api",
		JWTAudience: "mayas-bakery-clients",
	}
}

func TestIssueToken(t *testing.T) {
	cfg := tokenTestConfig()
	userID := uuid.New()

	signed, err := IssueToken(cfg, userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	// Parse it back with the same secret and check the claims
	token, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, cfg.JWTIssuer, claims.Issuer)
	assert.Contains(t, claims.Audience, cfg.JWTAudience)

	// Expiry sits a day out
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestIssueToken_WrongSecretFailsValidation(t *testing.T) {
	cfg := tokenTestConfig()

	signed, err := IssueToken(cfg, uuid.New())
	assert.NoError(t, err)

	_, err = jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("a-different-secret"), nil
	})
	assert.Error(t, err)
}
