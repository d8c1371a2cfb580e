package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viewtech-backend/internal/shared/response"
	"viewtech-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token and puts userID/role into the
// request context. Audit columns (created_by/updated_by) read userID from
// here.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c, manager)
		if !ok {
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid user ID in token")
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// OptionalAuthMiddleware sets the same context keys when a valid token is
// present but lets anonymous requests through. Public listing endpoints use
// it to decide between "published only" and "everything".
func OptionalAuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		if userID, err := uuid.Parse(claims.UserID); err == nil {
			c.Set("userID", userID)
			c.Set("role", claims.Role)
			c.Set("email", claims.Email)
		}

		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, "Missing authorization header")
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, "Invalid authorization header format")
		return nil, false
	}

	claims, err := manager.ValidateAccessToken(parts[1])
	if err != nil {
		response.Unauthorized(c, "Invalid token")
		return nil, false
	}

	return claims, true
}

// UserIDFromContext returns the authenticated user id, or uuid.Nil when the
// request is anonymous.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// IsAuthenticated reports whether the request carries a validated identity.
func IsAuthenticated(c *gin.Context) bool {
	return UserIDFromContext(c) != uuid.Nil
}
