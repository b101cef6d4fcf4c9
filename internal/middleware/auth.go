package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"mapposter-backend/internal/config"
	"mapposter-backend/internal/models"
)

const adminTokenTTL = 12 * time.Hour

// CheckPassword compares a submitted credential against the configured admin
// secret in constant time.
func CheckPassword(cfg *config.Config, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(cfg.AdminPass)) == 1
}

// IssueAdminToken signs a short-lived session token so the admin UI does not
// have to resend the raw secret on every request.
func IssueAdminToken(cfg *config.Config, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(adminTokenTTL).Unix(),
	})
	return token.SignedString([]byte(cfg.AdminPass))
}

// AdminAuth guards admin-only routes. The bearer credential is either the
// shared secret itself or a token from IssueAdminToken.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization header format"})
			return
		}

		credential := strings.TrimSpace(parts[1])
		if credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "empty credential"})
			return
		}

		if CheckPassword(cfg, credential) || validAdminToken(cfg, credential) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
	}
}

func validAdminToken(cfg *config.Config, tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.AdminPass), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return ok && claims["role"] == "admin"
}
