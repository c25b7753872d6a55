package session

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/feature/auth/domain/entity"
)

// CookieName is the cookie carrying the opaque session token.
const CookieName = "session_id"

// ContextUserID is the gin context key holding the authenticated user's ID.
const ContextUserID = "userID"

// Store is the minimal session lookup the middleware needs.
type Store interface {
	FindByID(ctx context.Context, id string) (*entity.Session, error)
}

// AuthRequired returns a gin middleware that resolves the session cookie
// and restricts access to authenticated users. It rejects the request
// before any business logic runs.
func AuthRequired(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		sess, err := store.FindByID(c.Request.Context(), token)
		if err != nil || sess.IsExpired() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Next()
	}
}

// UserID extracts the authenticated user's ID set by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
