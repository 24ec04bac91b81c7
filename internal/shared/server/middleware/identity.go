package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/respond"
)

const (
	ownerIDKey     = "ownerId"
	guestHeader    = "X-Guest-Id"
	maxGuestIDSize = 128
)

// Identity stores the anonymous owner named by the X-Guest-Id header, when present.
// Malformed ids are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(guestHeader))
		if raw == "" {
			c.Next()
			return
		}
		if !validGuestID(raw) {
			respond.Error(c, http.StatusBadRequest, "invalid_identity", "X-Guest-Id must be 1-128 letters, digits, '-' or '_'", nil)
			return
		}
		c.Set(ownerIDKey, "guest:"+raw)
		c.Next()
	}
}

// RequireIdentity aborts requests that carry no owner identity.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if OwnerIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		c.Next()
	}
}

// OwnerIDFromContext fetches the owner ID set by the Identity middleware.
func OwnerIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(ownerIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

func validGuestID(id string) bool {
	if id == "" || len(id) > maxGuestIDSize {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
