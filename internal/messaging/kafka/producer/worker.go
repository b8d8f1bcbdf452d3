package producer

import (
	"context"
	"time"

	"go-mission/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultBatchSize    = 50
	defaultPollInterval = 3 * time.Second
	// maxBatchesPerTick bounds how long one tick may spend draining a backlog.
	maxBatchesPerTick = 20
)

type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// ProcessOutboxEvents relays outbox rows to Kafka on every tick until ctx is
// cancelled. A full batch is followed immediately by the next one.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	cfg WorkerConfig,
) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started",
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Int("batch_size", cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := drain(ctx, repo, writer, log, cfg.BatchSize); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

func drain(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	batchSize int,
) (int, error) {
	total := 0
	for i := 0; i < maxBatchesPerTick; i++ {
		listed, sent, err := processPendingEvents(ctx, repo, writer, logger, batchSize)
		total += sent
		if err != nil {
			return total, err
		}
		if listed < batchSize || ctx.Err() != nil {
			break
		}
	}
	return total, nil
}

// processPendingEvents publishes one batch and reports how many rows were
// listed and how many made it to the broker.
func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	batchSize int,
) (int, int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, 0, err
	}
	if len(events) == 0 {
		return 0, 0, nil
	}

	logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed", append(fields,
				zap.Int("attempt", event.RetryCount+1),
				zap.Error(err),
			)...)
			if event.RetryCount+1 >= kafka.MaxOutboxAttempts {
				logger.Warn("outbox event parked as dead", fields...)
			}
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
			continue
		}

		sent++
		logger.Info("outbox event sent", append(fields, zap.String("aggregate_id", event.AggregateID))...)
	}

	return len(events), sent, nil
}
