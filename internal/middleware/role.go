package middleware

import (
	"net/http"

	"quadra/internal/domain"
	"quadra/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireActive rejects actors whose account is not ACTIVE (approval
// pending or blocked).
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := Actor(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if actor.Status != domain.UserActive {
			response.Error(c, http.StatusForbidden, "NOT_ACTIVE", "User is not active (approval pending or blocked)")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRoles gates a route group to the listed roles.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := Actor(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		for _, role := range allowed {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}
