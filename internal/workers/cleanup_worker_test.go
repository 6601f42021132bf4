package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gigup_backend/internal/metrics"
	"gigup_backend/internal/testutil"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPurger struct {
	calls     atomic.Int32
	purged    int64
	err       error
	olderThan time.Duration
}

func (s *stubPurger) PurgeExpired(_ context.Context, _ *gorm.DB, olderThan time.Duration) (int64, error) {
	s.calls.Add(1)
	s.olderThan = olderThan
	return s.purged, s.err
}

func TestCleanupWorker_RunOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	purger := &stubPurger{purged: 3}
	w := NewCleanupWorker(db, purger, "@hourly", 24*time.Hour)

	before := promtest.ToFloat64(metrics.CleanupPurgedTotal)
	n, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, 24*time.Hour, purger.olderThan)
	assert.Equal(t, before+3, promtest.ToFloat64(metrics.CleanupPurgedTotal))

	purger.err = errors.New("disk full")
	_, err = w.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestCleanupWorker_InvalidSchedule(t *testing.T) {
	w := NewCleanupWorker(testutil.NewTestDB(t), &stubPurger{}, "not a schedule", time.Hour)
	assert.Error(t, w.Start(context.Background()))
}

func TestCleanupWorker_RunsOnSchedule(t *testing.T) {
	purger := &stubPurger{}
	w := NewCleanupWorker(testutil.NewTestDB(t), purger, "@every 1s", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	assert.Eventually(t, func() bool { return purger.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
