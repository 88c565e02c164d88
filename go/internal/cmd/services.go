package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/lotterydash/go/clients/lottery_api_client"
	"github.com/mcdev12/lotterydash/go/internal/cache"
	"github.com/mcdev12/lotterydash/go/internal/catalog"
	"github.com/mcdev12/lotterydash/go/internal/dashboard"
	"github.com/mcdev12/lotterydash/go/internal/normalize"
	"github.com/mcdev12/lotterydash/go/internal/resultsync"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Catalog   *catalog.Catalog
	Syncer    *resultsync.Syncer
	Scheduler *resultsync.Scheduler
	Dashboard *dashboard.Service

	store    cache.Store
	natsConn *nats.Conn
}

func setupServices(ctx context.Context, cfg Config) (*Services, error) {
	// Wire up dependency injection chain
	// Client → Normalizer/Cache → Syncer → Scheduler → Dashboard
	clock := clockwork.NewRealClock()
	client := lottery_api_client.NewLotteryApiClient(cfg.ResultsBaseURL, cfg.RequestTimeout)

	jurisdictions, err := setupCatalog(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	store, err := setupCacheStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	services := &Services{Catalog: jurisdictions, store: store}

	state := resultsync.NewState()
	syncer := resultsync.NewSyncer(client, normalize.NewNormalizer(jurisdictions), cache.NewResultCache(store), state, clock)

	metrics := resultsync.NewCounterMetrics()
	scheduler := resultsync.NewScheduler(syncer, clock, resultsync.SchedulerConfig{
		Interval:          cfg.PollInterval,
		MinManualDuration: cfg.ManualRefresh,
	}, metrics)

	dash := dashboard.NewService(dashboard.DefaultConfig(cfg.PollInterval), state, scheduler, metrics, jurisdictions, clock)
	syncer.AddListener(dash.Listener())

	if cfg.NATSURL != "" {
		nc, err := resultsync.ConnectNATS(cfg.NATSURL)
		if err != nil {
			services.Close()
			return nil, err
		}
		services.natsConn = nc
		syncer.AddListener(resultsync.NewNATSPublisher(nc, cfg.NATSSubject))
		log.Info().Str("subject", cfg.NATSSubject).Msg("publishing result updates to NATS")
	}

	services.Syncer = syncer
	services.Scheduler = scheduler
	services.Dashboard = dash
	return services, nil
}

// setupCatalog loads the jurisdiction list and optionally overlays the
// server's draw schedule. A schedule fetch failure keeps the configured times.
func setupCatalog(ctx context.Context, cfg Config, client *lottery_api_client.LotteryApiClient) (*catalog.Catalog, error) {
	jurisdictions, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if !cfg.ScheduleFromAPI {
		return jurisdictions, nil
	}

	scheduleCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	schedule, err := client.GetSchedule(scheduleCtx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch draw schedule, using configured times")
		return jurisdictions, nil
	}

	updated, err := jurisdictions.WithSchedule(schedule)
	if err != nil {
		log.Warn().Err(err).Msg("server draw schedule rejected, using configured times")
		return jurisdictions, nil
	}
	log.Info().Int("entries", len(schedule)).Msg("draw schedule loaded from server")
	return updated, nil
}

// Close releases backend connections
func (s *Services) Close() {
	if s.natsConn != nil {
		if err := s.natsConn.Drain(); err != nil {
			log.Error().Err(err).Msg("failed to drain NATS connection")
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close cache store")
		}
	}
}
