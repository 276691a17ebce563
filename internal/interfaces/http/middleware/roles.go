package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/housebill/backend/internal/domain/identity"
)

// RequireRole aborts with 403 unless the authenticated user holds one of
// the given roles. Must run after the JWT middleware, which loads the user
// into the context. Services still enforce their own policy; this gate just
// rejects obviously unauthorized requests before they reach a handler.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}
