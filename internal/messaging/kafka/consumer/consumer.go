package consumer

import (
	"context"
	"errors"
	"time"

	"go-mission/internal/compensation"
	compensationerrors "go-mission/internal/compensation/errors"
	"go-mission/internal/events"
	missionerrors "go-mission/internal/mission/errors"
	"go-mission/internal/shared/contextutil"

	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// AssignationHandler is the slice of the compensation service driven by
// assignation lifecycle events.
type AssignationHandler interface {
	Recompute(ctx context.Context, companyID, actorID, assignationID string) (compensation.RecomputeResponse, error)
	PurgeAssignation(ctx context.Context, companyID, assignationID string) (int64, error)
}

var (
	retryBackoff    = time.Second
	maxRetryBackoff = 30 * time.Second
)

func ConsumeAssignationLifecycle(
	ctx context.Context,
	reader MessageReader,
	handler AssignationHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.assignation_lifecycle")
	log.Info("assignation lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("assignation lifecycle consumer stopped")
				return
			}
			log.Error("fetch assignation lifecycle message failed", zap.Error(err))
			continue
		}

		// Committing a later offset commits this one too, so a failed event is
		// retried here until it is handled before the partition moves on.
		if !handleUntilDone(ctx, msg, handler, log) {
			log.Info("assignation lifecycle consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit assignation lifecycle message failed", zap.Error(err))
		}
	}
}

// handleUntilDone retries msg with a doubling backoff. It returns false only
// when ctx ends first, leaving msg uncommitted.
func handleUntilDone(ctx context.Context, msg kafkago.Message, handler AssignationHandler, log *zap.Logger) bool {
	backoff := retryBackoff
	for attempt := 1; ; attempt++ {
		if handleMessage(ctx, msg, handler, log) {
			return true
		}
		log.Warn("retrying assignation event",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
		)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}
}

// handleMessage reports whether msg is done with and can be committed.
func handleMessage(ctx context.Context, msg kafkago.Message, handler AssignationHandler, log *zap.Logger) bool {
	var event events.AssignationChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode assignation event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		return true
	}

	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}
	fields := []zap.Field{
		zap.String("event_type", event.EventType),
		zap.String("assignation_id", event.AssignationID),
		zap.String("company_id", event.CompanyID),
		zap.String("request_id", event.RequestID),
	}

	switch event.EventType {
	case events.AssignationUpserted:
		resp, err := handler.Recompute(ctx, event.CompanyID, event.ActorID, event.AssignationID)
		switch {
		case err == nil:
			log.Info("compensation recomputed from assignation event",
				append(fields, zap.Int("lines", len(resp.Lines)), zap.String("total", resp.TotalAmount))...)
			return true
		case errors.Is(err, compensationerrors.ErrRecomputeConflict):
			log.Warn("recompute already running, event will be retried", fields...)
			return false
		case errors.Is(err, compensationerrors.ErrInvalidDateRange),
			errors.Is(err, compensationerrors.ErrInvalidAssignationID),
			errors.Is(err, compensationerrors.ErrAssignationAlreadyPaid),
			errors.Is(err, missionerrors.ErrAssignationNotFound),
			errors.Is(err, missionerrors.ErrExpenseTypesMissing):
			log.Warn("assignation event rejected", append(fields, zap.Error(err))...)
			return true
		default:
			log.Error("recompute from assignation event failed", append(fields, zap.Error(err))...)
			return false
		}

	case events.AssignationDeleted:
		n, err := handler.PurgeAssignation(ctx, event.CompanyID, event.AssignationID)
		if err != nil {
			log.Error("purge compensation lines failed", append(fields, zap.Error(err))...)
			return false
		}
		log.Info("compensation lines purged", append(fields, zap.Int64("deleted", n))...)
		return true

	default:
		log.Warn("unknown assignation event type, skipping", fields...)
		return true
	}
}
