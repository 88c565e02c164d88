package resultsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/lotterydash/go/clients"
	"github.com/mcdev12/lotterydash/go/clients/lottery_api_client"
	"github.com/mcdev12/lotterydash/go/internal/cache"
	"github.com/mcdev12/lotterydash/go/internal/models"
	"github.com/mcdev12/lotterydash/go/internal/normalize"
	"github.com/rs/zerolog/log"
)

// ResultsFetcher retrieves the raw results envelope
type ResultsFetcher interface {
	GetResults(ctx context.Context) (*lottery_api_client.ResultsResponse, error)
}

// UpdateListener is notified after every applied snapshot
type UpdateListener interface {
	ResultsUpdated(ctx context.Context, snapshot models.Snapshot)
}

// Syncer runs one fetch, normalize, replace, persist cycle
type Syncer struct {
	fetcher    ResultsFetcher
	normalizer *normalize.Normalizer
	cache      *cache.ResultCache
	state      *State
	clock      clockwork.Clock
	listeners  []UpdateListener
}

func NewSyncer(fetcher ResultsFetcher, normalizer *normalize.Normalizer, resultCache *cache.ResultCache, state *State, clock clockwork.Clock) *Syncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Syncer{
		fetcher:    fetcher,
		normalizer: normalizer,
		cache:      resultCache,
		state:      state,
		clock:      clock,
	}
}

// AddListener registers l for snapshot updates. Not safe to call once syncing has started.
func (s *Syncer) AddListener(l UpdateListener) {
	s.listeners = append(s.listeners, l)
}

// State returns the state the syncer writes to
func (s *Syncer) State() *State {
	return s.state
}

// Restore loads the cached snapshot so consumers have data before the first fetch
func (s *Syncer) Restore(ctx context.Context) models.Snapshot {
	results, lastUpdate := s.cache.Load(ctx)
	results = s.normalizer.Complete(results)

	snapshot := models.Snapshot{
		Results:        results,
		Messages:       s.normalizer.Messages(results),
		LastUpdateTime: lastUpdate,
	}
	s.state.restore(snapshot)

	log.Info().
		Str("last_update_time", lastUpdate).
		Int("available", countAvailable(results)).
		Msg("restored results from cache")

	return snapshot
}

// Sync fetches and applies the latest results. On failure the previous
// snapshot stays in place with the general error message set. A result that
// arrives after ctx is cancelled is discarded.
func (s *Syncer) Sync(ctx context.Context) error {
	resp, err := s.fetcher.GetResults(ctx)
	if err != nil {
		if ctx.Err() != nil {
			log.Debug().Err(err).Msg("sync abandoned after teardown")
			return ctx.Err()
		}
		s.state.fail(err, s.clock.Now())
		logFetchError(err)
		return err
	}

	snapshot := s.normalizer.Normalize(resp)

	if ctx.Err() != nil {
		log.Debug().Msg("discarding results fetched after teardown")
		return ctx.Err()
	}

	applied := s.state.replace(snapshot, s.clock.Now())

	if err := s.cache.Save(ctx, applied.Results, applied.LastUpdateTime); err != nil {
		log.Error().Err(err).Msg("failed to persist results cache")
	}

	log.Info().
		Str("last_update_time", applied.LastUpdateTime).
		Int("available", countAvailable(applied.Results)).
		Msg("results synchronized")

	for _, l := range s.listeners {
		l.ResultsUpdated(ctx, applied)
	}
	return nil
}

func logFetchError(err error) {
	var netErr *clients.NetworkError
	var parseErr *clients.ParseError
	switch {
	case errors.As(err, &netErr):
		log.Error().Err(err).Int("status", netErr.StatusCode).Msg("results fetch failed")
	case errors.As(err, &parseErr):
		log.Error().Err(err).Str("endpoint", parseErr.Endpoint).Msg("results response malformed")
	default:
		log.Error().Err(fmt.Errorf("unexpected sync error: %w", err)).Msg("results sync failed")
	}
}

func countAvailable(results models.ResultsMapping) int {
	n := 0
	for _, r := range results {
		if r.Available() {
			n++
		}
	}
	return n
}
