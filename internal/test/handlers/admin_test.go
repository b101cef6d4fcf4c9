package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"mapposter-backend/internal/config"
	"mapposter-backend/internal/handlers"
	"mapposter-backend/internal/middleware"
	"mapposter-backend/internal/models"
)

func loginRouter(cfg *config.Config, limiter *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/admin/check",
		limiter.Middleware("Too many login attempts. Try again later."),
		handlers.NewAdminHandler(cfg).Check)
	return router
}

func postLogin(router *gin.Engine, password string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"password":"` + password + `"}`)
	req, _ := http.NewRequest("POST", "/api/admin/check", body)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminCheck_CorrectPassword(t *testing.T) {
	cfg := &config.Config{AdminPass: "test123"}
	router := loginRouter(cfg, middleware.NewRateLimiter(5, time.Minute))

	w := postLogin(router, "test123")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AdminCheckResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)

	// the issued token must be accepted by the admin guard
	gin.SetMode(gin.TestMode)
	guarded := gin.New()
	guarded.Use(middleware.AdminAuth(cfg))
	guarded.GET("/guarded", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	gw := httptest.NewRecorder()
	guarded.ServeHTTP(gw, req)
	assert.Equal(t, http.StatusOK, gw.Code)
}

func TestAdminCheck_WrongPassword(t *testing.T) {
	cfg := &config.Config{AdminPass: "test123"}
	router := loginRouter(cfg, middleware.NewRateLimiter(5, time.Minute))

	w := postLogin(router, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong password")
	// the expected secret must never leak into the error body
	assert.NotContains(t, w.Body.String(), "test123")
}

func TestAdminCheck_RateLimited(t *testing.T) {
	cfg := &config.Config{AdminPass: "test123"}
	router := loginRouter(cfg, middleware.NewRateLimiter(5, time.Minute))

	for i := 0; i < 5; i++ {
		w := postLogin(router, "wrong")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// the sixth attempt is rejected even with the correct password
	w := postLogin(router, "test123")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many login attempts")
}
