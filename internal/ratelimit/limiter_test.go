package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitWithinBurst(t *testing.T) {
	l := New("test", 10)
	require.NoError(t, l.Wait(context.Background()))
	assert.Equal(t, "test", l.Name())
}

func TestWaitCancelledContext(t *testing.T) {
	l := New("test", 1)
	// Drain the burst so the next wait would block.
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test")
}

func TestAllowExhaustsBurst(t *testing.T) {
	l := New("test", 1)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}
