package app

import (
	"context"
	"os/signal"
	"syscall"

	"go-mission/internal/config"
	"go-mission/internal/events"
	"go-mission/internal/messaging/kafka/consumer"
	"go-mission/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const assignationConsumerGroup = "go-mission-compensation"

// RunConsumer recomputes compensations whenever the planning side reports an
// assignation change.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	services := NewServices(cfg, sqlDB, gormDB, rdb, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.KafkaBroker},
		Topic:       events.AssignationChangedTopic,
		GroupID:     assignationConsumerGroup,
		StartOffset: kafkago.FirstOffset,
		MaxWait:     cfg.OutboxPollInterval,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeAssignationLifecycle(ctx, reader, services.CompensationService, logger)

	logger.Info("consumer shut down")
	return nil
}
