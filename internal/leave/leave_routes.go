package leave

import (
	"github.com/theesh-25755/HR-mobile-app/internal/middleware"
	"github.com/theesh-25755/HR-mobile-app/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.Authorize(rbacService, "leave", "create"), middleware.RateLimitByUser(1, 5), middleware.Idempotency(rdb), handler.Submit)
		leaves.GET("/pending", middleware.Authorize(rbacService, "leave", "review"), middleware.RateLimitByUser(3, 10), handler.Pending)
		leaves.POST("/:id/action", middleware.Authorize(rbacService, "leave", "review"), middleware.RateLimitByUser(2, 10), middleware.Idempotency(rdb), handler.Act)
		leaves.GET("/mine", middleware.Authorize(rbacService, "leave", "read"), middleware.RateLimitByUser(3, 10), handler.Mine)
	}
}
