package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"filemanager-backend/internal/shared/server/respond"
)

// OwnerHeader carries the caller identity set by the upstream gateway.
const OwnerHeader = "User-Id"

const ownerIDKey = "ownerId"

// Identity reads the caller identity from the User-Id header and stores it in
// context. Requests without one are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		ownerID := strings.TrimSpace(c.GetHeader(OwnerHeader))
		if ownerID == "" {
			respond.BadRequest(c, respond.MissingRequiredFields, nil)
			return
		}
		c.Set(ownerIDKey, ownerID)
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
