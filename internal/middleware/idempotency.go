package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go-mission/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockTTL = 30 * time.Second

func IdempotencyCacheKey(path, userID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, userID, key)
}

// Idempotency replays the cached response of a POST carrying an
// Idempotency-Key header. While the first request runs, duplicates get 409.
// The handler owns the keys it finds in the context: it deletes the lock and
// caches its response under the cache key.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := IdempotencyCacheKey(c.FullPath(), c.GetString("user_id_validated"), idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached json.RawMessage
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// Without redis the request runs unprotected rather than failing.
			c.Next()
			return
		}
		if !isNew {
			abort(c, ErrRequestInFlight)
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
