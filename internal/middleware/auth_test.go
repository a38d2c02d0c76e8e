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
	"github.com/user/mediashelf/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{AppSecret: "test-secret", JWTExpiry: time.Hour}
}

func newAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAuth(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	r.GET("/public", OptionalAuth(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r := newAuthRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)

	token, err := GenerateToken(cfg, 42, "ayse@example.com", "ayse")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestRequireAuthAcceptsCookie(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)

	token, err := GenerateToken(cfg, 7, "mehmet@example.com", "mehmet")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	other := &config.Config{AppSecret: "another-secret", JWTExpiry: time.Hour}
	r := newAuthRouter(cfg)

	token, err := GenerateToken(other, 42, "ayse@example.com", "ayse")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	r := newAuthRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestSlidingRefresh(t *testing.T) {
	cfg := testConfig()

	// 剩余有效期不足一半才续签
	fresh := &Claims{}
	fresh.ExpiresAt = jwt.NewNumericDate(time.Now().Add(55 * time.Minute))
	assert.False(t, shouldRefresh(fresh, cfg))

	stale := &Claims{}
	stale.ExpiresAt = jwt.NewNumericDate(time.Now().Add(10 * time.Minute))
	assert.True(t, shouldRefresh(stale, cfg))
}
