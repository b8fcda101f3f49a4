package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cvboost/internal/model"
	"cvboost/internal/pkg/jwtutil"
	"cvboost/internal/transport/http/response"
)

const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"
	ContextRoleKey   = "role"
)

func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin renders a fixed access-denied response for non-admin
// identities instead of attempting the restricted call. Must run after
// AuthJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get(ContextRoleKey)
		role, ok := roleAny.(string)
		if !exists || !ok || role != string(model.RoleAdmin) {
			response.Error(c, 403, response.CodeForbidden, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
