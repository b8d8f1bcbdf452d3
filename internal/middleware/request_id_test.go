package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-mission/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		wantEcho bool
	}{
		{name: "keeps a safe caller id", header: "req-42_a.b:c", wantEcho: true},
		{name: "mints when missing", header: ""},
		{name: "mints when unsafe", header: "bad id\r\n"},
		{name: "mints when too long", header: strings.Repeat("a", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromCtx string
			r := gin.New()
			r.Use(RequestID())
			r.GET("/", func(c *gin.Context) {
				fromCtx = contextutil.GetRequestID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderRequestID, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			assert.NotEmpty(t, got)
			assert.Equal(t, got, fromCtx)
			if tt.wantEcho {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}
		})
	}
}

func TestContextLogger_ReusesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestID())
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", "user-1")
		c.Set("company_id", "company-1")
		c.Next()
	})
	r.Use(ContextLogger(zap.New(core)))
	r.GET("/scales", func(c *gin.Context) {
		contextutil.GetLogger(c.Request.Context(), zap.NewNop()).Info("handled")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/scales", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))
	entries := logs.FilterMessage("handled").All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "company-1", fields["company_id"])
	assert.Equal(t, "/scales", fields["route"])
}
