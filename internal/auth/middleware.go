package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextUserIDKey = "userID"

// AuthRequired validates the Authorization: Bearer <token> header and stores
// the authenticated user ID in the gin context.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(contextUserIDKey, claims.Subject)

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID or an empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(contextUserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
