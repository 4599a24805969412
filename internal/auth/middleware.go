package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/config"
)

const userIDKey = "userID"

// Middleware rejects requests without a valid bearer token and stores the
// acting user ID in the gin context. Services receive the identity as an
// explicit argument, never by digging through request state themselves.
func Middleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing or invalid"})
			return
		}

		userID, err := ParseToken(cfg, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID extracts the acting user ID stored by Middleware.
func UserID(c *gin.Context) uint64 {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0
	}
	id, ok := v.(uint64)
	if !ok {
		return 0
	}
	return id
}
