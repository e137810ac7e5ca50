package autoreply

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 10 * time.Millisecond

func newTestDispatcher(t *testing.T, delay time.Duration) *Dispatcher {
	t.Helper()
	d := New(delay, nil)
	t.Cleanup(d.Close)
	return d
}

func counter(n *atomic.Int32) Task {
	return func(ctx context.Context) error {
		n.Add(1)
		return nil
	}
}

func TestSchedule_RunsAfterDelay(t *testing.T) {
	d := newTestDispatcher(t, testDelay)
	var runs atomic.Int32

	start := time.Now()
	require.True(t, d.Schedule("t-1", counter(&runs)))
	require.NoError(t, d.Wait(context.Background(), "t-1"))

	assert.GreaterOrEqual(t, time.Since(start), testDelay)
	assert.Equal(t, int32(1), runs.Load())
	assert.Zero(t, d.Pending())
}

func TestSchedule_IdempotentPerID(t *testing.T) {
	d := newTestDispatcher(t, testDelay)
	var runs atomic.Int32

	assert.True(t, d.Schedule("t-1", counter(&runs)))
	assert.False(t, d.Schedule("t-1", counter(&runs)), "pending id must not be scheduled twice")
	require.NoError(t, d.Wait(context.Background(), "t-1"))

	assert.False(t, d.Schedule("t-1", counter(&runs)), "finished id must not run again")
	assert.Equal(t, int32(1), runs.Load())
}

func TestSchedule_IndependentIDs(t *testing.T) {
	d := newTestDispatcher(t, testDelay)
	var runs atomic.Int32

	for _, id := range []string{"a", "b", "c"} {
		require.True(t, d.Schedule(id, counter(&runs)))
	}
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Wait(context.Background(), id))
	}
	assert.Equal(t, int32(3), runs.Load())
}

func TestCancel_BeforeDelay(t *testing.T) {
	d := newTestDispatcher(t, time.Hour)
	var runs atomic.Int32

	require.True(t, d.Schedule("t-1", counter(&runs)))
	assert.Equal(t, 1, d.Pending())
	assert.True(t, d.Cancel("t-1"))

	err := d.Wait(context.Background(), "t-1")
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, runs.Load())
	assert.False(t, d.Cancel("t-1"), "nothing left to cancel")
}

func TestCancel_AllowsReschedule(t *testing.T) {
	d := newTestDispatcher(t, testDelay)
	var runs atomic.Int32

	require.True(t, d.Schedule("t-1", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	require.True(t, d.Cancel("t-1"))
	require.ErrorIs(t, d.Wait(context.Background(), "t-1"), ErrCancelled)

	require.True(t, d.Schedule("t-1", counter(&runs)))
	require.NoError(t, d.Wait(context.Background(), "t-1"))
	assert.Equal(t, int32(1), runs.Load())
}

func TestCancel_UnknownID(t *testing.T) {
	d := newTestDispatcher(t, testDelay)
	assert.False(t, d.Cancel("nope"))
}

func TestWait_NotScheduled(t *testing.T) {
	d := newTestDispatcher(t, testDelay)
	assert.ErrorIs(t, d.Wait(context.Background(), "nope"), ErrNotScheduled)
}

func TestWait_ContextDeadline(t *testing.T) {
	d := newTestDispatcher(t, time.Hour)
	require.True(t, d.Schedule("t-1", counter(new(atomic.Int32))))

	ctx, cancel := context.WithTimeout(context.Background(), testDelay)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx, "t-1"), context.DeadlineExceeded)
}

func TestTaskError_Reported(t *testing.T) {
	d := newTestDispatcher(t, 0)
	boom := errors.New("boom")

	require.True(t, d.Schedule("t-1", func(ctx context.Context) error { return boom }))
	assert.ErrorIs(t, d.Wait(context.Background(), "t-1"), boom)
	assert.False(t, d.Schedule("t-1", func(ctx context.Context) error { return nil }), "failed tasks are not retried")
}

func TestTaskPanic_Recovered(t *testing.T) {
	d := newTestDispatcher(t, 0)

	require.True(t, d.Schedule("t-1", func(ctx context.Context) error { panic("kaboom") }))
	err := d.Wait(context.Background(), "t-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestClose_CancelsOutstanding(t *testing.T) {
	d := New(time.Hour, nil)
	var runs atomic.Int32

	require.True(t, d.Schedule("t-1", counter(&runs)))
	require.True(t, d.Schedule("t-2", counter(&runs)))

	d.Close()

	assert.ErrorIs(t, d.Wait(context.Background(), "t-1"), ErrCancelled)
	assert.ErrorIs(t, d.Wait(context.Background(), "t-2"), ErrCancelled)
	assert.Zero(t, runs.Load())
	assert.Zero(t, d.Pending())
	assert.False(t, d.Schedule("t-3", counter(&runs)), "closed dispatcher accepts nothing")
	d.Close()
}

func TestScheduleAfter_OverridesDelay(t *testing.T) {
	d := newTestDispatcher(t, time.Hour)
	var runs atomic.Int32

	require.True(t, d.ScheduleAfter("now", 0, counter(&runs)))
	require.True(t, d.ScheduleAfter("late", -time.Minute, counter(&runs)))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx, "now"))
	require.NoError(t, d.Wait(ctx, "late"))
	assert.Equal(t, int32(2), runs.Load())

	require.True(t, d.Schedule("default", counter(&runs)))
	assert.Equal(t, 1, d.Pending(), "default delay still applies to Schedule")
}
