package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLocked = errors.New("lock is held by another caller")

//go:generate mockgen -source=locker.go -destination=mock/locker_mock.go -package=mock
type Locker interface {
	// TryLock never waits. It returns ErrLocked when the key is already held.
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

// releaseScript deletes the key only when it still carries our token, so a
// caller whose lock expired cannot release somebody else's.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	rdb      *redis.Client
	newToken func() string
}

func NewRedisLocker(rdb *redis.Client) Locker {
	return &redisLocker{rdb: rdb, newToken: uuid.NewString}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := l.newToken()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		// detached from the request so a cancelled request still releases
		_ = releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Err()
	}, nil
}

type localLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

// NewLocalLocker is an in-process Locker for single-binary use (CLI, tests).
func NewLocalLocker() Locker {
	return &localLocker{held: map[string]time.Time{}, now: time.Now}
}

func (l *localLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expires, ok := l.held[key]; ok && l.now().Before(expires) {
		return nil, ErrLocked
	}
	expires := l.now().Add(ttl)
	l.held[key] = expires

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key].Equal(expires) {
			delete(l.held, key)
		}
	}, nil
}
