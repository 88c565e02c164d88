package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/lotterydash/go/internal/catalog"
	"github.com/mcdev12/lotterydash/go/internal/models"
	"github.com/mcdev12/lotterydash/go/internal/resultsync"
	"github.com/rs/zerolog/log"
)

// SnapshotProvider exposes the current results snapshot
type SnapshotProvider interface {
	Snapshot() models.Snapshot
}

// Refresher triggers manual refreshes
type Refresher interface {
	Refresh(ctx context.Context) error
	Refreshing() bool
}

// ResultsResponse is the body of GET /api/results and POST /api/refresh
type ResultsResponse struct {
	models.Snapshot
	Refreshing bool `json:"refreshing"`
}

// RowsResponse is the body of GET /api/rows
type RowsResponse struct {
	Rows           []Row  `json:"rows"`
	LastUpdateTime string `json:"lastUpdateTime"`
	Error          string `json:"error,omitempty"`
	Refreshing     bool   `json:"refreshing"`
}

// ResultsHandler serves the read-only results API and the manual refresh trigger
type ResultsHandler struct {
	snapshots SnapshotProvider
	refresher Refresher
	catalog   *catalog.Catalog
	clock     clockwork.Clock
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(snapshots SnapshotProvider, refresher Refresher, c *catalog.Catalog, clock clockwork.Clock) *ResultsHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ResultsHandler{
		snapshots: snapshots,
		refresher: refresher,
		catalog:   c,
		clock:     clock,
	}
}

// HandleGetResults handles GET /api/results
func (h *ResultsHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, ResultsResponse{
		Snapshot:   h.snapshots.Snapshot(),
		Refreshing: h.refresher.Refreshing(),
	})
}

// HandleGetRows handles GET /api/rows?q=<filter>
func (h *ResultsHandler) HandleGetRows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot := h.snapshots.Snapshot()
	writeJSON(w, http.StatusOK, RowsResponse{
		Rows:           BuildRows(h.catalog, snapshot, r.URL.Query().Get("q"), h.clock.Now()),
		LastUpdateTime: snapshot.LastUpdateTime,
		Error:          snapshot.Error,
		Refreshing:     h.refresher.Refreshing(),
	})
}

// HandleRefresh handles POST /api/refresh
func (h *ResultsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	err := h.refresher.Refresh(r.Context())
	if errors.Is(err, resultsync.ErrRefreshInProgress) {
		http.Error(w, "Refresh already in progress", http.StatusConflict)
		return
	}

	status := http.StatusOK
	if err != nil {
		log.Warn().Err(err).Msg("manual refresh failed")
		status = http.StatusBadGateway
	}
	writeJSON(w, status, ResultsResponse{
		Snapshot:   h.snapshots.Snapshot(),
		Refreshing: h.refresher.Refreshing(),
	})
}

// HandleGetSchedule handles GET /api/schedule
func (h *ResultsHandler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.catalog.Schedule())
}

// RegisterRoutes registers the results API routes
func (h *ResultsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/results", h.HandleGetResults)
	mux.HandleFunc("/api/rows", h.HandleGetRows)
	mux.HandleFunc("/api/refresh", h.HandleRefresh)
	mux.HandleFunc("/api/schedule", h.HandleGetSchedule)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
