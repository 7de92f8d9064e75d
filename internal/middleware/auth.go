package middleware

import (
	"context"
	"net/http"
	"strings"

	"quadra/internal/domain"
	jwtsvc "quadra/internal/pkg/jwt"
	"quadra/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const actorKey = "actor"

// UserSource resolves a token subject into the current user row.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Auth validates the bearer token and loads the actor fresh from the
// store. Role, status and tower are never trusted from the token; every
// request re-reads authoritative state.
func Auth(jwt *jwtsvc.Service, users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid token subject")
			return
		}

		actor, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "Unknown user")
			return
		}

		c.Set(actorKey, actor)
		c.Set("user_id", actor.ID.String())
		c.Set("role", string(actor.Role))

		c.Next()
	}
}

// Actor returns the authenticated user set by Auth.
func Actor(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil, false
	}
	actor, ok := v.(*domain.User)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
	c.Abort()
}
