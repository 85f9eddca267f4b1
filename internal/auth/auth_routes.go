package auth

import (
	"github.com/theesh-25755/HR-mobile-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		authGroup.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
