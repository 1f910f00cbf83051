package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
	"github.com/noah-isme/isp-backoffice-api/pkg/response"
)

// RequireRoles lets the request through only for admins holding one of roles.
func RequireRoles(roles ...models.AdminRole) gin.HandlerFunc {
	allowed := make(map[models.AdminRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
