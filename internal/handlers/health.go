package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"mapposter-backend/internal/models"
)

// HealthHandler reports liveness. Registered on /health and on / for
// platform probes that only hit the root.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
