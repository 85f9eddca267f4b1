package notification

import (
	"github.com/theesh-25755/HR-mobile-app/internal/middleware"
	"github.com/theesh-25755/HR-mobile-app/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.Authorize(rbacService, "notification", "read"), middleware.RateLimitByUser(5, 20), handler.List)
		notifications.PUT("/:id/read", middleware.Authorize(rbacService, "notification", "update"), middleware.RateLimitByUser(2, 10), handler.MarkRead)
	}
}
