package middleware

import (
	"github.com/gin-gonic/gin"

	"viewtech-backend/internal/shared/response"
)

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		role, ok := roleInterface.(string)
		if !ok || role != "admin" {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
