package app

import (
	"context"
	"database/sql"

	"go-mission/internal/compensation"
	"go-mission/internal/config"
	"go-mission/internal/middleware"
	"go-mission/internal/payment"
	"go-mission/internal/rbac"
	"go-mission/internal/rbac/infra"
	"go-mission/internal/rbac/rbac_http"
	"go-mission/internal/scale"
	"go-mission/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	paymentRepo := payment.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	services := NewServices(cfg, db, gormDB, rdb, logger)

	var store payment.ObjectStore
	if cfg.ExportS3Bucket != "" {
		store, err = payment.NewS3Store(ctx, cfg.AWSRegion, cfg.ExportS3Bucket, cfg.ExportS3Endpoint)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("EXPORT_S3_BUCKET not set, payment view archiving disabled")
	}
	paymentService := payment.NewService(
		db,
		services.Missions,
		services.Compensation,
		paymentRepo,
		store,
		payment.ServiceConfig{ArchivePrefix: cfg.ExportS3Prefix},
		logger,
	)

	// --- Handlers ---
	scaleHandler := scale.NewHandler(services.ScaleService, logger)
	compensationHandler := compensation.NewHandlerWithRedis(services.CompensationService, rdb, logger)
	validationHandler := validation.NewHandler(services.ValidationService, logger)
	paymentHandler := payment.NewHandler(paymentService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1", middleware.RateLimitByIP(rate.Limit(cfg.ClientRateLimit), cfg.ClientBurst))
	{
		scale.RegisterRoutes(api, scaleHandler, rbacService, logger)
		compensation.RegisterRoutes(api, compensationHandler, rbacService, logger, rdb)
		validation.RegisterRoutes(api, validationHandler, rbacService, logger)
		payment.RegisterRoutes(api, paymentHandler, rbacService, logger, cfg.ExportRateLimit)
		rbac_http.RegisterRoutes(api, rbacHandler, rbacService, logger)
	}

	return nil
}
