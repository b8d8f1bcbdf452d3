// Package cli holds the compctl admin commands.
package cli

import (
	"context"
	"database/sql"

	"go-mission/internal/app"
	"go-mission/internal/config"
	"go-mission/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type env struct {
	services app.Services
	close    func()
}

// openEnv is swapped in tests.
var openEnv = func(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, 1)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 1)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &env{
		services: app.NewServices(cfg, sqlDB, gormDB, rdb, zap.L()),
		close:    closer(sqlDB, rdb),
	}, nil
}

var openMigrationDB = func() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return connection.OpenSQL(cfg.Postgres)
}

func closer(db *sql.DB, rdb *redis.Client) func() {
	return func() {
		_ = rdb.Close()
		_ = db.Close()
	}
}
