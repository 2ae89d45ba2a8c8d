// internal/middleware/helpers.go
package middleware

import (
	"rentorio-service/internal/domain/user"

	"github.com/gin-gonic/gin"
)

// GetUserID gets the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}

	id, ok := v.(int64)
	return id, ok
}

// MustGetUserID gets the authenticated user's ID or panics.
func MustGetUserID(c *gin.Context) int64 {
	id, ok := GetUserID(c)
	if !ok {
		panic("user_id not found in context")
	}
	return id
}

// GetRole gets the authenticated user's role from the context.
func GetRole(c *gin.Context) (user.Role, bool) {
	v, exists := c.Get("role")
	if !exists {
		return "", false
	}

	role, ok := v.(user.Role)
	return role, ok
}

// IsAdmin checks if the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	role, ok := GetRole(c)
	return ok && role == user.RoleAdmin
}
