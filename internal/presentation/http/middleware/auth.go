package middleware

import (
	"net/http"
	"strings"

	"github.com/embedworks/embedvideo-go/internal/infrastructure/security"
	"github.com/embedworks/embedvideo-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// RoleKey is the context key carrying the authenticated role.
const RoleKey = "role"

// AdminAuthMiddleware rejects requests without a valid admin bearer token.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := security.ValidateJWT(strings.TrimPrefix(authHeader, "Bearer "), config.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if security.RoleFromClaims(claims) != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}

		c.Set(RoleKey, "admin")
		c.Next()
	}
}
