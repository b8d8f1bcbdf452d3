package app

import (
	"database/sql"

	"go-mission/internal/compensation"
	"go-mission/internal/config"
	"go-mission/internal/messaging/kafka"
	"go-mission/internal/mission"
	"go-mission/internal/scale"
	"go-mission/internal/shared/lock"
	"go-mission/internal/validation"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services holds the wired domain services shared by the API, the consumer
// and the admin CLI.
type Services struct {
	Missions     mission.Repository
	Compensation compensation.Repository
	Outbox       kafka.OutboxRepository

	ScaleService        scale.Service
	ValidationService   validation.Service
	CompensationService compensation.Service
}

func NewServices(cfg config.Config, db *sql.DB, gormDB *gorm.DB, rdb *redis.Client, logger *zap.Logger) Services {
	s := Services{
		Missions:     mission.NewRepository(gormDB),
		Compensation: compensation.NewRepository(gormDB),
		Outbox:       kafka.NewOutboxRepository(db),
	}

	s.ScaleService = scale.NewService(scale.NewRepository(gormDB), rdb, cfg.ScaleCacheTTL, logger)
	s.ValidationService = validation.NewServiceWithOutbox(db, validation.NewRepository(gormDB), s.Missions, s.Outbox, logger)
	s.CompensationService = compensation.NewService(
		db,
		s.Compensation,
		s.Missions,
		s.ScaleService,
		s.ValidationService,
		lock.NewRedisLocker(rdb),
		s.Outbox,
		compensation.ServiceConfig{
			LockTTL: cfg.RecomputeLockTTL,
			Policy:  compensation.MealPolicy{ReturnDinnerCutoff: cfg.ReturnDinnerCutoff},
		},
		logger,
	)
	return s
}
