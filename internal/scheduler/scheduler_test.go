package scheduler

import (
	"context"
	"errors"
	"probpick/internal/models"
	"probpick/internal/structures"
	"probpick/internal/testutil"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStats struct {
	calls atomic.Int32
	stats []models.UserStat
	err   error
}

func (c *countingStats) ComputeAll(_ context.Context) ([]models.UserStat, error) {
	c.calls.Add(1)
	return c.stats, c.err
}

func warmConfig(enabled bool, interval time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled:      enabled,
			Size:         1,
			TTL:          time.Minute,
			WarmInterval: interval,
		},
	}
}

func TestScheduler_WarmComputesStats(t *testing.T) {
	stats := &countingStats{stats: []models.UserStat{
		{UserID: "alice", Solved: 1, Total: 2},
		{UserID: "bob", Partial: true, Total: 2},
	}}
	logger := &testutil.MockLogger{}

	s := NewScheduler(warmConfig(true, time.Minute), logger, stats)
	require.NoError(t, s.Warm())

	assert.Equal(t, int32(1), stats.calls.Load())
	assert.Equal(t, 1, logger.Count("info"))
	assert.Equal(t, []interface{}{2, 1}, logger.Logs[0].Args)
}

func TestScheduler_WarmPropagatesError(t *testing.T) {
	stats := &countingStats{err: &models.PersistenceError{Op: "read", Err: errors.New("disk")}}

	s := NewScheduler(warmConfig(true, time.Minute), &testutil.MockLogger{}, stats)
	err := s.Warm()
	assert.True(t, errors.Is(err, models.ErrPersistence))
}

func TestScheduler_DisabledWithoutCache(t *testing.T) {
	stats := &countingStats{}
	logger := &testutil.MockLogger{}

	s := NewScheduler(warmConfig(false, time.Second), logger, stats)
	s.Init()
	defer s.Stop()

	sched := s.(*Scheduler)
	assert.Nil(t, sched.cron)
	assert.Equal(t, time.Duration(0), sched.interval)
}

func TestScheduler_StopNilCron(t *testing.T) {
	s := NewScheduler(warmConfig(true, 0), &testutil.MockLogger{}, &countingStats{})
	// Should not panic with nil cron
	s.Stop()
}

func TestScheduler_InitRunsPeriodically(t *testing.T) {
	stats := &countingStats{}

	s := NewScheduler(warmConfig(true, time.Second), &testutil.MockLogger{}, stats)
	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return stats.calls.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond)
}
