package dashboard

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests for results subscribers
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	snapshots         SnapshotProvider
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager, snapshots SnapshotProvider) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		snapshots:         snapshots,
	}
}

// HandleResultsConnection upgrades the request and sends the current snapshot
func (h *WebSocketHandler) HandleResultsConnection(w http.ResponseWriter, r *http.Request) {
	initial := newResultsEvent(EventTypeSnapshot, h.snapshots.Snapshot())
	if err := h.connectionManager.UpgradeConnection(w, r, initial); err != nil {
		// Upgrade has already replied to the client
		log.Error().
			Err(err).
			Str("remote_addr", r.RemoteAddr).
			Msg("failed to upgrade WebSocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"total_connections": h.connectionManager.ConnectionCount(),
	})
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/results", h.HandleResultsConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
