package middleware

import (
	"go-mission/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	maxRequestIDLen = 128
)

// RequestID accepts a caller supplied X-Request-ID when it is safe to echo
// into logs and headers, and mints a fresh one otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := resolveRequestID(c)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

// resolveRequestID returns the id already bound to c, or binds a new one.
func resolveRequestID(c *gin.Context) string {
	if rid := c.GetString("request_id"); rid != "" {
		return rid
	}

	rid := c.GetHeader(HeaderRequestID)
	if !validRequestID(rid) {
		rid = uuid.NewString()
	}
	c.Set("request_id", rid)
	c.Header(HeaderRequestID, rid)
	return rid
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLen {
		return false
	}
	for _, r := range rid {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}
