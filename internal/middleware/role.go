package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"studiobook/internal/domain"
	"studiobook/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has one of the given roles
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		r, _ := role.(string)
		if !slices.Contains(roles, domain.UserRole(r)) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CustomerOnly middleware requires customer role
func CustomerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleCustomer)
}

// OwnerOnly middleware requires owner role
func OwnerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleOwner)
}
