package mw

import (
	"github.com/gin-gonic/gin"

	"room-lease-backend/internal/model"
)

// Context keys and trusted headers for the caller identity. Authentication
// itself happens upstream; the gateway forwards the resolved identity and
// role in these headers.
const (
	HeaderUserID = "X-User-Id"
	HeaderRole   = "X-User-Role"

	CtxUserID = "user_id"
	CtxRole   = "user_role"
)

// Identity extracts the caller identity resolved by the auth collaborator.
// Absent or unrecognized headers yield the anonymous role.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		role := model.Role(c.GetHeader(HeaderRole))
		switch role {
		case model.RoleOwner, model.RoleTenant:
			if userID == "" {
				role = model.RoleAnonymous
			}
		default:
			role = model.RoleAnonymous
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// CallerID returns the caller's user id, empty for anonymous callers.
func CallerID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// CallerRole returns the caller's resolved role.
func CallerRole(c *gin.Context) model.Role {
	if v, ok := c.Get(CtxRole); ok {
		if role, ok := v.(model.Role); ok {
			return role
		}
	}
	return model.RoleAnonymous
}
