package testutil

import (
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/services"
)

// TestConfig returns a config suitable for issuing and validating tokens
// in tests. The secret is fixed so tokens minted by one helper validate
// in another.
func TestConfig() *config.Config {
	return &config.Config{
		GoEnv:       "test",
		Port:        "8080",
		JWTSecret:   "test-secret-do-not-use-in-production",
		JWTIssuer:   "mayas-bakery-api",
		JWTAudience: "mayas-bakery-clients",

		CustomCakeLeadDays:  2,
		WeddingCakeLeadDays: 14,

		CorsAllowedOrigins: "http://localhost:3000",
	}
}

// IssueTestToken mints a real HS256 token for the given user, signed
// with the test secret. Use it to exercise the full middleware path.
func IssueTestToken(userID uuid.UUID) (string, error) {
	return services.IssueToken(TestConfig(), userID)
}

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
	}
}

// SetMockAuthContext sets up a mock authenticated context for testing,
// bypassing the JWT middleware entirely
func SetMockAuthContext(c *gin.Context, userID uuid.UUID) {
	claims := MockValidatedClaims(userID.String(), "mayas-bakery-api")
	c.Set("user_id", userID.String())
	c.Set("validated_claims", claims)
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
