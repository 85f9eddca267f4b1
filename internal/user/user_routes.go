package user

import (
	"github.com/theesh-25755/HR-mobile-app/internal/middleware"
	"github.com/theesh-25755/HR-mobile-app/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("", middleware.Authorize(rbacService, "profile", "read"), middleware.RateLimitByUser(3, 10), handler.GetProfile)
		profile.PUT("", middleware.Authorize(rbacService, "profile", "update"), middleware.RateLimitByUser(1, 5), handler.UpdateProfile)
		profile.POST("/photo", middleware.Authorize(rbacService, "profile", "update"), middleware.RateLimitByUser(0.2, 2), handler.UploadPhoto)
	}

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.Authorize(rbacService, "users", "read"), middleware.RateLimitByUser(2, 10), handler.ListUsers)
	}
}
