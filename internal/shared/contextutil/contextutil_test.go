package contextutil_test

import (
	"context"
	"testing"

	"go-mission/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetadataRoundTrip(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithUserID(ctx, "user-9")
	ctx = contextutil.WithCompanyID(ctx, "company-1")

	md := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, "rid-1", md.RequestID)
	assert.Equal(t, "user-9", md.UserID)
	assert.Equal(t, "company-1", md.CompanyID)
	assert.Len(t, md.Fields(), 3)
}

func TestMetadata_FieldsSkipsEmpty(t *testing.T) {
	md := contextutil.ExtractMetadata(contextutil.WithRequestID(context.Background(), "rid-1"))

	fields := md.Fields()

	assert.Len(t, fields, 1)
	assert.Equal(t, "request_id", fields[0].Key)
}

func TestGetters_NilAndEmptyContext(t *testing.T) {
	assert.Equal(t, "", contextutil.GetRequestID(nil))
	assert.Equal(t, "", contextutil.GetUserID(context.Background()))
	assert.Equal(t, "", contextutil.GetCompanyID(context.Background()))
}

func TestGetLogger_Fallbacks(t *testing.T) {
	scoped := zap.NewNop().Named("scoped")
	fallback := zap.NewNop().Named("fallback")

	assert.Same(t, scoped, contextutil.GetLogger(contextutil.WithLogger(context.Background(), scoped), fallback))
	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
}
