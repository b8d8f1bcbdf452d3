package app

import (
	"context"

	"go-mission/internal/config"
	"go-mission/internal/middleware"
	"go-mission/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every module on router.
// The returned cleanup closes the connections it opened.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	middleware.SetJWTSecret(cfg.JWTSecret)
	router.Use(middleware.RequestID())

	if err := registerModules(ctx, router, cfg, sqlDB, gormDB, redisClient, logger); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
