package ratelimit

import (
	"context"
	"testing"
	"time"

	"gigup_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_BurstThenReject(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	l := New(rdb, 1, 2)
	base := time.Now()
	l.now = func() time.Time { return base }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := l.Allow(ctx, "login:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, wait, err := l.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	// другой ключ не затронут
	ok, _, err = l.Allow(ctx, "login:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_Refills(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	l := New(rdb, 2, 1)
	base := time.Now()
	l.now = func() time.Time { return base }
	ctx := context.Background()

	ok, _, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	l.now = func() time.Time { return base.Add(600 * time.Millisecond) }
	ok, _, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	l := New(rdb, 0, 0)

	for i := 0; i < 10; i++ {
		ok, _, err := l.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
