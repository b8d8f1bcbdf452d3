package lock

func NewRedisLockerWithToken(l Locker, token string) Locker {
	rl := l.(*redisLocker)
	return &redisLocker{rdb: rl.rdb, newToken: func() string { return token }}
}
