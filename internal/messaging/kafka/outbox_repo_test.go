package kafka

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := NewOutboxEvent("req-1", "compensation", "a-1", "compensation_recomputed", "topic", map[string]string{"k": "v"})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"k":"v"}`, string(event.Payload))
	assert.NoError(t, ValidateOutboxEvent(event))
}

func TestOutboxRepository_Create(t *testing.T) {
	t.Run("inserts a valid event", func(t *testing.T) {
		db, m, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event, _ := NewOutboxEvent("", "mission_validation", "m-1", "mission_validation_completed", "topic", struct{}{})
		m.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(event.ID, "", "mission_validation", "m-1", "mission_validation_completed", "topic", event.Payload, OutboxStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = NewOutboxRepository(db).Create(context.Background(), event)

		assert.NoError(t, err)
		assert.NoError(t, m.ExpectationsWereMet())
	})

	t.Run("rejects an event without topic", func(t *testing.T) {
		db, m, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		err = NewOutboxRepository(db).Create(context.Background(), OutboxEvent{ID: "o-1", EventType: "x", Payload: []byte(`{}`), Status: OutboxStatusPending})

		assert.EqualError(t, err, "outbox topic is required")
		assert.NoError(t, m.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, m, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("o-1", "req-1", "compensation", "a-1", "compensation_recomputed", "topic", []byte(`{}`), OutboxStatusFailed, 2, now)
	m.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := NewOutboxRepository(db).ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "o-1", events[0].ID)
	assert.Equal(t, 2, events[0].RetryCount)
	assert.NoError(t, m.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, m, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	m.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("o-1", OutboxStatusFailed, "broker down", MaxOutboxAttempts, OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewOutboxRepository(db).MarkFailed(context.Background(), "o-1", "broker down")

	assert.NoError(t, err)
	assert.NoError(t, m.ExpectationsWereMet())
}
