package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maya-widjaja/mayas-bakery-api/config"
)

// TokenTTL is how long an issued access token stays valid
const TokenTTL = 24 * time.Hour

// IssueToken signs an HS256 access token for the given user. The token
// carries the user id in the sub claim and is verified by the auth
// middleware against the same shared secret.
func IssueToken(cfg *config.Config, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.JWTIssuer,
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings{cfg.JWTAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
