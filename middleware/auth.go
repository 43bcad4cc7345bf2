package middleware

import (
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores the caller's
// identity in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := services.VerifyToken(tokenString)
		if err != nil {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// OwnerGuard compares the user_id path segment with the authenticated
// identity. A mismatch answers 404, the same as a record that does not
// exist, so the URL space leaks nothing about other users.
func OwnerGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		pathOwner := c.Param("user_id")
		authedID := c.GetString("user_id")
		if pathOwner == "" || pathOwner != authedID {
			utils.NotFound(c, "Not found")
			c.Abort()
			return
		}
		c.Next()
	}
}
