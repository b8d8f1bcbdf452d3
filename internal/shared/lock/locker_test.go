package lock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-mission/internal/shared/lock"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisLocker_TryLock(t *testing.T) {
	ctx := context.Background()
	key := "compensation:recompute:a1"

	t.Run("acquired", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		locker := lock.NewRedisLockerWithToken(lock.NewRedisLocker(rdb), "tok")

		mock.ExpectSetNX(key, "tok", 30*time.Second).SetVal(true)

		unlock, err := locker.TryLock(ctx, key, 30*time.Second)

		assert.NoError(t, err)
		assert.NotNil(t, unlock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already held", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		locker := lock.NewRedisLockerWithToken(lock.NewRedisLocker(rdb), "tok")

		mock.ExpectSetNX(key, "tok", 30*time.Second).SetVal(false)

		unlock, err := locker.TryLock(ctx, key, 30*time.Second)

		assert.ErrorIs(t, err, lock.ErrLocked)
		assert.Nil(t, unlock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		locker := lock.NewRedisLockerWithToken(lock.NewRedisLocker(rdb), "tok")

		mock.ExpectSetNX(key, "tok", 30*time.Second).SetErr(errors.New("connection refused"))

		_, err := locker.TryLock(ctx, key, 30*time.Second)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, lock.ErrLocked)
	})
}

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	locker := lock.NewLocalLocker()

	unlock, err := locker.TryLock(ctx, "k", time.Minute)
	assert.NoError(t, err)

	_, err = locker.TryLock(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, lock.ErrLocked)

	unlock()

	again, err := locker.TryLock(ctx, "k", time.Minute)
	assert.NoError(t, err)
	again()
}
