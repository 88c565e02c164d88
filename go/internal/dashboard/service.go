package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/lotterydash/go/internal/catalog"
	"github.com/mcdev12/lotterydash/go/internal/resultsync"
	"github.com/rs/zerolog/log"
)

// Scheduler is the part of resultsync.Scheduler the dashboard drives
type Scheduler interface {
	Refresher
	PhaseReporter
}

// Service is the dashboard service that serves results over HTTP and WebSocket
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	resultsHandler    *ResultsHandler
	healthChecker     *SyncHealthChecker
	exporter          *PrometheusExporter
}

// Config holds configuration for the dashboard service
type Config struct {
	ConnectionConfig ConnectionConfig
	// HealthThreshold is how long the service may go without a successful sync
	// after a failure before /health reports unhealthy
	HealthThreshold time.Duration
}

// DefaultConfig returns default configuration for a poll interval
func DefaultConfig(interval time.Duration) Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		HealthThreshold:  3 * interval,
	}
}

// NewService creates a new dashboard service
func NewService(config Config, state *resultsync.State, scheduler Scheduler, metrics *resultsync.CounterMetrics, c *catalog.Catalog, clock clockwork.Clock) *Service {
	if metrics == nil {
		metrics = resultsync.NewCounterMetrics()
	}

	connectionManager := NewConnectionManager(config.ConnectionConfig)
	healthChecker := NewSyncHealthChecker(state, scheduler, connectionManager, clock, config.HealthThreshold)

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager, state),
		resultsHandler:    NewResultsHandler(state, scheduler, c, clock),
		healthChecker:     healthChecker,
		exporter:          NewPrometheusExporter(healthChecker, metrics),
	}
}

// Listener returns the update listener that pushes snapshots to WebSocket clients
func (s *Service) Listener() resultsync.UpdateListener {
	return s.connectionManager
}

// Start runs the connection manager until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting dashboard service")

	s.connectionManager.Start(ctx)

	log.Info().Msg("dashboard service shutting down")
	return s.Stop()
}

// Stop gracefully shuts down the dashboard service
func (s *Service) Stop() error {
	// Connection manager closes its connections when its context is cancelled
	log.Info().Msg("dashboard service stopped")
	return nil
}

// RegisterRoutes registers the dashboard HTTP routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.resultsHandler.RegisterRoutes(mux)
	s.wsHandler.RegisterRoutes(mux)
	mux.Handle("/health", s.healthChecker)
	mux.Handle("/metrics", s.exporter)
	log.Info().Msg("dashboard routes registered")
}

// GetStats returns statistics about the dashboard service
func (s *Service) GetStats() map[string]interface{} {
	status := s.healthChecker.Check()
	return map[string]interface{}{
		"service":           "dashboard",
		"healthy":           status.Healthy,
		"phase":             status.Phase,
		"total_connections": status.Connections,
	}
}
