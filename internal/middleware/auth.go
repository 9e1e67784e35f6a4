// Package middleware provides Gin middleware for authentication and authorization.
package middleware

import (
	"net/http"
	"strings"

	"bingo-admin-service/internal/models"
	"bingo-admin-service/internal/services"
	"bingo-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// RequireAuth validates the bearer token and stores the authenticated user in
// the request context. Requests without a valid token get a 401.
func RequireAuth(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Unauthenticated"))
			return
		}

		user, err := identity.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Unauthenticated"))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("Forbidden"))
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return authHeader
	}
	return strings.TrimPrefix(authHeader, bearerPrefix)
}
