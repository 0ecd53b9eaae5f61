package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-torresc/emerald-backend-sub002/config"
)

const testSecret = "test-secret-please-rotate"

func authConfig() *config.AuthConfig {
	return &config.AuthConfig{
		Enabled:   true,
		JWTSecret: testSecret,
		Issuer:    "emerald-idp",
	}
}

func signToken(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    "emerald-idp",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func runAuth(t *testing.T, cfg *config.AuthConfig, authorization string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var actor string
	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/probe", func(c *gin.Context) {
		actor = ActorFromGin(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, actor
}

func TestAuthAcceptsValidToken(t *testing.T) {
	token := signToken(t, validClaims(), testSecret)

	w, actor := runAuth(t, authConfig(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", actor)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	w, _ := runAuth(t, authConfig(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing bearer token")
}

func TestAuthRejectsWrongSignature(t *testing.T) {
	token := signToken(t, validClaims(), "some-other-secret")

	w, _ := runAuth(t, authConfig(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signToken(t, claims, testSecret)

	w, _ := runAuth(t, authConfig(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsTokenWithoutExpiry(t *testing.T) {
	claims := validClaims()
	claims.ExpiresAt = nil
	token := signToken(t, claims, testSecret)

	w, _ := runAuth(t, authConfig(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsWrongIssuer(t *testing.T) {
	claims := validClaims()
	claims.Issuer = "someone-else"
	token := signToken(t, claims, testSecret)

	w, _ := runAuth(t, authConfig(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsMissingSubject(t *testing.T) {
	claims := validClaims()
	claims.Subject = ""
	token := signToken(t, claims, testSecret)

	w, _ := runAuth(t, authConfig(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthDisabledPassesThrough(t *testing.T) {
	cfg := authConfig()
	cfg.Enabled = false

	w, actor := runAuth(t, cfg, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, actor)
}
