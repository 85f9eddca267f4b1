package middleware

import (
	"github.com/theesh-25755/HR-mobile-app/internal/rbac"
	"github.com/theesh-25755/HR-mobile-app/internal/shared/apperror"
	"github.com/theesh-25755/HR-mobile-app/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize checks the caller's role against the embedded policy table.
// Runs after AuthMiddleware, which put the role claim in the context.
func Authorize(rbacService rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		allowed, err := rbacService.Enforce(role, resource, action)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c,
				apperror.ErrForbidden.HTTPStatus,
				apperror.ErrForbidden.Code,
				apperror.ErrForbidden.Message,
				nil,
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
