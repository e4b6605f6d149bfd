package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Para-Plus/para-plus/auth"
	"github.com/Para-Plus/para-plus/models"
)

// ValidateToken authenticates the request from its Bearer token and stores
// user_id and role in the gin context for downstream handlers.
func ValidateToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "En-tête Authorization manquant"})
		c.Abort()
		return
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	claims, err := auth.ParseAccessToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton invalide ou expiré"})
		c.Abort()
		return
	}

	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Next()
}

// RequireRole gates a route group to a single role. Runs after ValidateToken.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé au rôle " + string(role)})
			c.Abort()
			return
		}
		c.Next()
	}
}
