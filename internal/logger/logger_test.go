package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), "user-1")
	ctx = ContextWithRequestID(ctx, "req-1")

	userID, ok := UserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	requestID, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-1", requestID)
}

func TestContextMissingValues(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

// WithContext must pick up the ids the middleware stores; a bare context
// yields the unmodified default logger.
func TestWithContextAttachesIdentity(t *testing.T) {
	base := Get()

	assert.Same(t, base, WithContext(context.Background()))

	ctx := ContextWithUserID(context.Background(), "user-1")
	assert.NotSame(t, base, WithContext(ctx))

	ctx = ContextWithRequestID(context.Background(), "req-1")
	assert.NotSame(t, base, WithContext(ctx))
}
