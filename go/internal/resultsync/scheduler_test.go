package resultsync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSyncable struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
}

func (f *fakeSyncable) Sync(ctx context.Context) error {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func testConfig() SchedulerConfig {
	return SchedulerConfig{Interval: 60 * time.Second, MinManualDuration: 2 * time.Second}
}

func TestRefreshWhileFetchingIsNoOp(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fc := clockwork.NewFakeClock()
	fs := &fakeSyncable{started: make(chan struct{}, 1), release: make(chan struct{})}
	metrics := NewCounterMetrics()
	s := NewScheduler(fs, fc, testConfig(), metrics)

	done := make(chan error, 1)
	go func() { done <- s.Refresh(ctx) }()
	<-fs.started

	assert.Equal(t, PhaseFetching, s.Phase())
	assert.True(t, s.Refreshing())
	assert.ErrorIs(t, s.Refresh(ctx), ErrRefreshInProgress)

	close(fs.release)
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(2 * time.Second)

	require.NoError(t, <-done)
	assert.Equal(t, int32(1), fs.calls.Load())
	assert.Equal(t, uint64(1), metrics.Snapshot().Skipped[TriggerManual])
	assert.False(t, s.Refreshing())
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestRefreshHoldsMinimumDurationWithoutBlockingTimer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fc := clockwork.NewFakeClock()
	fs := &fakeSyncable{}
	s := NewScheduler(fs, fc, testConfig(), nil)

	done := make(chan error, 1)
	go func() { done <- s.Refresh(ctx) }()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	assert.True(t, s.Refreshing())
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.ErrorIs(t, s.Refresh(ctx), ErrRefreshInProgress)

	s.launch(ctx, TriggerTimer)
	s.inflight.Wait()
	assert.Equal(t, int32(2), fs.calls.Load())

	select {
	case <-done:
		t.Fatal("refresh returned before the minimum duration")
	default:
	}

	fc.Advance(2 * time.Second)
	require.NoError(t, <-done)
	assert.False(t, s.Refreshing())
}

func TestRefreshReturnsSyncError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fc := clockwork.NewFakeClock()
	fs := &fakeSyncable{err: assert.AnError}
	metrics := NewCounterMetrics()
	s := NewScheduler(fs, fc, testConfig(), metrics)

	done := make(chan error, 1)
	go func() { done <- s.Refresh(ctx) }()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(2 * time.Second)

	assert.ErrorIs(t, <-done, assert.AnError)
	assert.Equal(t, uint64(1), metrics.Snapshot().Failed[TriggerManual])
}

func TestRunSyncsAtStartAndOnEveryTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fc := clockwork.NewFakeClock()
	fs := &fakeSyncable{started: make(chan struct{}, 10)}
	metrics := NewCounterMetrics()
	s := NewScheduler(fs, fc, testConfig(), metrics)

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- s.Run(runCtx) }()

	<-fs.started
	require.Eventually(t, func() bool { return s.Phase() == PhaseIdle }, time.Second, 5*time.Millisecond)

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(60 * time.Second)
	<-fs.started

	require.Eventually(t, func() bool { return s.Phase() == PhaseIdle }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), fs.calls.Load())

	stop()
	require.NoError(t, <-done)

	counts := metrics.Snapshot()
	assert.Equal(t, uint64(1), counts.Succeeded[TriggerStartup])
	assert.Equal(t, uint64(1), counts.Succeeded[TriggerTimer])
}

func TestRunSkipsTicksWhileFetching(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fc := clockwork.NewFakeClock()
	fs := &fakeSyncable{started: make(chan struct{}, 10), release: make(chan struct{})}
	metrics := NewCounterMetrics()
	s := NewScheduler(fs, fc, testConfig(), metrics)

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- s.Run(runCtx) }()

	<-fs.started
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(60 * time.Second)

	require.Eventually(t, func() bool {
		return metrics.Snapshot().Skipped[TriggerTimer] == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), fs.calls.Load())
	assert.ErrorIs(t, s.Refresh(ctx), ErrRefreshInProgress)

	close(fs.release)
	stop()
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), fs.calls.Load())
}

func TestNewSchedulerDefaults(t *testing.T) {
	s := NewScheduler(&fakeSyncable{}, nil, SchedulerConfig{}, nil)

	assert.Equal(t, 60*time.Second, s.Interval())
	assert.Equal(t, "idle", s.Phase().String())
	assert.Equal(t, "fetching", PhaseFetching.String())
}
