package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTrigger struct {
	calls atomic.Int32
	err   error
}

func (c *countingTrigger) EnqueueSummaryBackfill(context.Context) (string, error) {
	c.calls.Add(1)
	return "task-1", c.err
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("30 3 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("every day"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"), "seconds field is not accepted")
}

func TestSummaryBackfillScheduler_StartStop(t *testing.T) {
	s := NewSummaryBackfillScheduler(&countingTrigger{}, "0 4 * * *")

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.NextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 4, next.Hour())
	assert.Equal(t, 0, next.Minute())

	// A second Start is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())
}

func TestSummaryBackfillScheduler_StopsWithContext(t *testing.T) {
	s := NewSummaryBackfillScheduler(&countingTrigger{}, "0 4 * * *")
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestSummaryBackfillScheduler_InvalidSchedule(t *testing.T) {
	s := NewSummaryBackfillScheduler(&countingTrigger{}, "not a schedule")
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestSummaryBackfillScheduler_RunNow(t *testing.T) {
	trigger := &countingTrigger{}
	s := NewSummaryBackfillScheduler(trigger, "0 4 * * *")

	id, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)

	s.runBackfill()
	trigger.err = errors.New("queue closed")
	s.runBackfill()
	assert.Equal(t, int32(3), trigger.calls.Load())
}
