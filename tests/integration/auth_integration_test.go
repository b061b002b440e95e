package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/controllers"
	"github.com/maya-widjaja/mayas-bakery-api/middleware"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/maya-widjaja/mayas-bakery-api/tests/testutil"
)

// AuthIntegrationTestSuite exercises registration, login and the token
// middleware against a real router and an in-memory database.
type AuthIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    *config.Config
}

// SetupSuite runs once before all tests
func (suite *AuthIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")

	suite.cfg = testutil.TestConfig()
	config.SetConfig(suite.cfg)
}

// SetupTest runs before each test
func (suite *AuthIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(&models.User{}, &models.AdminUser{}))
	config.SetDB(db)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1")
	{
		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/login", controllers.Login)

		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(suite.cfg))
		{
			authed.GET("/users/me", controllers.GetMyProfile)
		}
	}
}

func (suite *AuthIntegrationTestSuite) postJSON(path string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)
	return w
}

// TestRegisterLoginProfileFlow tests the full journey: register an account,
// log in for a token, and use the token to fetch the profile
func (suite *AuthIntegrationTestSuite) TestRegisterLoginProfileFlow() {
	t := suite.T()

	// Register
	w := suite.postJSON("/api/v1/auth/register", map[string]string{
		"name":     "Sari Dewi",
		"email":    "sari@example.com",
		"password": "secret-password",
		"phone":    "+62-812-000-111",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Login
	w = suite.postJSON("/api/v1/auth/login", map[string]string{
		"email":    "sari@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &loginResponse)
	assert.NoError(t, err)
	data := loginResponse["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	// Fetch profile with the issued token through the real middleware
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	suite.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var profileResponse map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &profileResponse)
	assert.NoError(t, err)
	assert.True(t, profileResponse["success"].(bool))

	profile := profileResponse["data"].(map[string]interface{})
	assert.Equal(t, "sari@example.com", profile["email"])
	assert.Equal(t, "Sari Dewi", profile["name"])
	assert.NotContains(t, w.Body.String(), "password")
}

// TestLoginWrongPassword tests that bad credentials never yield a token
func (suite *AuthIntegrationTestSuite) TestLoginWrongPassword() {
	t := suite.T()

	w := suite.postJSON("/api/v1/auth/register", map[string]string{
		"name":     "Sari Dewi",
		"email":    "sari@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = suite.postJSON("/api/v1/auth/login", map[string]string{
		"email":    "sari@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "token")
}

// TestProtectedEndpointWithoutToken tests that protected endpoints reject requests without tokens
func (suite *AuthIntegrationTestSuite) TestProtectedEndpointWithoutToken() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response["success"].(bool))
}

// TestProtectedEndpointWithInvalidToken tests that protected endpoints reject invalid tokens
func (suite *AuthIntegrationTestSuite) TestProtectedEndpointWithInvalidToken() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer invalid-token-here")

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response["success"].(bool))
}

// TestProtectedEndpointWithMalformedAuthHeader tests various malformed auth headers
func (suite *AuthIntegrationTestSuite) TestProtectedEndpointWithMalformedAuthHeader() {
	testCases := []struct {
		name   string
		header string
	}{
		{"Missing Bearer prefix", "token-without-bearer"},
		{"Wrong prefix", "Basic token"},
		{"Empty token", "Bearer "},
		{"Only Bearer", "Bearer"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			req.Header.Set("Authorization", tc.header)

			suite.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

// TestProtectedEndpointResponseFormat tests the error response format
func (suite *AuthIntegrationTestSuite) TestProtectedEndpointResponseFormat() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)

	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	assert.Contains(suite.T(), response, "success")
	assert.False(suite.T(), response["success"].(bool))
	assert.Contains(suite.T(), response, "error")

	errorObj := response["error"].(map[string]interface{})
	assert.Contains(suite.T(), errorObj, "code")
	assert.Contains(suite.T(), errorObj, "message")
}

// TestAuthIntegrationTestSuite runs the test suite
func TestAuthIntegrationTestSuite(t *testing.T) {
	testutil.RequireTestEnvironment(t)
	suite.Run(t, new(AuthIntegrationTestSuite))
}
