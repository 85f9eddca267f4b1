package app

import (
	"os"

	"github.com/theesh-25755/HR-mobile-app/internal/auth"
	"github.com/theesh-25755/HR-mobile-app/internal/leave"
	"github.com/theesh-25755/HR-mobile-app/internal/messaging/kafka"
	"github.com/theesh-25755/HR-mobile-app/internal/middleware"
	"github.com/theesh-25755/HR-mobile-app/internal/notification"
	"github.com/theesh-25755/HR-mobile-app/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&auth.User{},
		&leave.Leave{},
		&leave.DecisionRecord{},
		&notification.Notification{},
		&kafka.OutboxRecord{},
	); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.CORS())

	return registerModules(router, db, gormDB, rdb)
}
