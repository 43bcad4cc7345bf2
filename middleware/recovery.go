package middleware

import (
	"log"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns panics into a 500 response instead of
// dropping the connection.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				utils.TrackError("http", "panic")
				utils.InternalError(c, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
