package resultsync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ErrRefreshInProgress is returned by Refresh when it would start a second fetch
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Phase is the scheduler's fetch state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
)

func (p Phase) String() string {
	if p == PhaseFetching {
		return "fetching"
	}
	return "idle"
}

// Syncable runs one sync cycle
type Syncable interface {
	Sync(ctx context.Context) error
}

// SchedulerConfig holds timing for the scheduler
type SchedulerConfig struct {
	Interval          time.Duration
	MinManualDuration time.Duration
}

// DefaultSchedulerConfig returns default scheduler timing
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:          60 * time.Second,
		MinManualDuration: 2 * time.Second,
	}
}

// Scheduler drives the sync cycle from a ticker and from manual refreshes.
// At most one fetch is in flight; a manual refresh also holds the
// refreshing flag until MinManualDuration has elapsed so the affordance stays
// visible, without holding back timer ticks.
type Scheduler struct {
	syncer  Syncable
	clock   clockwork.Clock
	config  SchedulerConfig
	metrics MetricsCollector

	mu         sync.Mutex
	phase      Phase
	refreshing bool
	runCtx     context.Context
	inflight   sync.WaitGroup
}

func NewScheduler(syncer Syncable, clock clockwork.Clock, config SchedulerConfig, metrics MetricsCollector) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if metrics == nil {
		metrics = &NoOpMetricsCollector{}
	}
	if config.Interval <= 0 {
		config.Interval = DefaultSchedulerConfig().Interval
	}
	return &Scheduler{
		syncer:  syncer,
		clock:   clock,
		config:  config,
		metrics: metrics,
	}
}

// Phase reports whether a fetch is in flight
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Refreshing reports whether a manual refresh is still in progress
func (s *Scheduler) Refreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshing
}

// Interval returns the polling interval
func (s *Scheduler) Interval() time.Duration {
	return s.config.Interval
}

// Run syncs once immediately and then on every tick until ctx is cancelled.
// Ticks that find a fetch in flight are skipped.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.runCtx = ctx
	s.mu.Unlock()

	log.Info().Dur("interval", s.config.Interval).Msg("results scheduler started")

	ticker := s.clock.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.launch(ctx, TriggerStartup)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("results scheduler shutting down")
			s.inflight.Wait()
			return nil
		case <-ticker.Chan():
			s.launch(ctx, TriggerTimer)
		}
	}
}

// launch starts a background sync unless one is already in flight
func (s *Scheduler) launch(ctx context.Context, trigger Trigger) {
	if !s.begin(false) {
		s.metrics.RecordSkipped(trigger)
		log.Debug().Str("trigger", string(trigger)).Msg("fetch in flight, skipping tick")
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.syncOnce(ctx, trigger)
	}()
}

// Refresh runs a manual sync and returns once both the sync and the minimum
// visible duration are over. It returns ErrRefreshInProgress without
// fetching when a fetch or another manual refresh is underway.
func (s *Scheduler) Refresh(ctx context.Context) error {
	if !s.begin(true) {
		s.metrics.RecordSkipped(TriggerManual)
		return ErrRefreshInProgress
	}
	defer s.endRefresh()

	syncCtx, cancel := s.syncContext(ctx)
	defer cancel()

	start := s.clock.Now()
	err := s.syncOnce(syncCtx, TriggerManual)

	if remaining := s.config.MinManualDuration - s.clock.Since(start); remaining > 0 {
		select {
		case <-s.clock.After(remaining):
		case <-ctx.Done():
		}
	}
	return err
}

// syncContext detaches a manual sync from the caller and ties it to the
// running scheduler instead, so only teardown discards its result
func (s *Scheduler) syncContext(ctx context.Context) (context.Context, context.CancelFunc) {
	s.mu.Lock()
	runCtx := s.runCtx
	s.mu.Unlock()

	merged, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if runCtx == nil {
		return merged, cancel
	}
	stop := context.AfterFunc(runCtx, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}

func (s *Scheduler) syncOnce(ctx context.Context, trigger Trigger) error {
	defer s.endFetch()

	start := s.clock.Now()
	err := s.syncer.Sync(ctx)
	duration := s.clock.Since(start)

	s.metrics.RecordSync(trigger, err == nil, duration)
	if err != nil {
		log.Warn().Err(err).Str("trigger", string(trigger)).Msg("sync cycle failed")
	} else {
		log.Debug().Str("trigger", string(trigger)).Dur("duration", duration).Msg("sync cycle completed")
	}
	return err
}

func (s *Scheduler) begin(manual bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseFetching || (manual && s.refreshing) {
		return false
	}
	s.phase = PhaseFetching
	if manual {
		s.refreshing = true
	}
	return true
}

func (s *Scheduler) endFetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseIdle
}

func (s *Scheduler) endRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
}
