package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"mapposter-backend/internal/config"
	"mapposter-backend/internal/middleware"
	"mapposter-backend/internal/models"
)

type AdminHandler struct {
	cfg *config.Config
}

func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{cfg: cfg}
}

// Check verifies the admin password. The response carries a session token so
// subsequent admin calls can use a bearer header instead of the raw secret.
// The error body never echoes the expected secret.
func (h *AdminHandler) Check(c *gin.Context) {
	var req models.AdminCheckRequest
	_ = c.ShouldBindJSON(&req)

	if !middleware.CheckPassword(h.cfg, req.Password) {
		c.JSON(http.StatusUnauthorized, models.AdminCheckResponse{
			Success: false,
			Error:   "Wrong password",
		})
		return
	}

	token, err := middleware.IssueAdminToken(h.cfg, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to issue token",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.AdminCheckResponse{Success: true, Token: token})
}
