package middleware

import (
	"net/http"
	"strings"

	"github.com/kenmaca/frrand-api/internal/auth"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		userID, username, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		// Attach user info to request context
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

// RequireOwnership aborts with 403 unless the authenticated caller is the
// user named by the :username route parameter.
func RequireOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, _ := c.Get("username")
		if username != c.Param("username") {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "not authorized to access " + c.Param("username"),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
