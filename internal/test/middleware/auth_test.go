package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"mapposter-backend/internal/config"
	"mapposter-backend/internal/middleware"
)

func adminRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AdminAuth(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestAdminAuth_NoHeader(t *testing.T) {
	router := adminRouter(&config.Config{AdminPass: "secret"})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_WrongSecret(t *testing.T) {
	router := adminRouter(&config.Config{AdminPass: "secret"})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestAdminAuth_RawSecret(t *testing.T) {
	router := adminRouter(&config.Config{AdminPass: "secret"})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth_IssuedToken(t *testing.T) {
	cfg := &config.Config{AdminPass: "secret"}
	router := adminRouter(cfg)

	token, err := middleware.IssueAdminToken(cfg, time.Now())
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth_TokenSignedWithOtherKey(t *testing.T) {
	router := adminRouter(&config.Config{AdminPass: "secret"})

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tokenString, _ := forged.SignedString([]byte("other-key"))

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_ExpiredToken(t *testing.T) {
	cfg := &config.Config{AdminPass: "secret"}
	router := adminRouter(cfg)

	token, err := middleware.IssueAdminToken(cfg, time.Now().Add(-24*time.Hour))
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckPassword(t *testing.T) {
	cfg := &config.Config{AdminPass: "test123"}
	assert.True(t, middleware.CheckPassword(cfg, "test123"))
	assert.False(t, middleware.CheckPassword(cfg, "test124"))
	assert.False(t, middleware.CheckPassword(cfg, ""))
}
