package app

import (
	"database/sql"

	"github.com/theesh-25755/HR-mobile-app/internal/auth"
	"github.com/theesh-25755/HR-mobile-app/internal/leave"
	"github.com/theesh-25755/HR-mobile-app/internal/messaging/kafka"
	"github.com/theesh-25755/HR-mobile-app/internal/notification"
	"github.com/theesh-25755/HR-mobile-app/internal/rbac"
	"github.com/theesh-25755/HR-mobile-app/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	userService := user.NewService(userRepo)
	notificationService := notification.NewService(db, notificationRepo, outboxRepo)
	leaveService := leave.NewService(db, leaveRepo, notificationService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}
