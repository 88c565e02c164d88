package dashboard

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/lotterydash/go/internal/resultsync"
)

// HealthStatus reports whether results are being kept fresh
type HealthStatus struct {
	Healthy     bool      `json:"healthy"`
	Phase       string    `json:"phase"`
	Refreshing  bool      `json:"refreshing"`
	LastSuccess time.Time `json:"last_success"`
	LastFailure time.Time `json:"last_failure"`
	LastError   string    `json:"last_error,omitempty"`
	Connections int       `json:"connections"`
	Errors      []string  `json:"errors"`
}

// HealthSource exposes sync outcomes
type HealthSource interface {
	Health() resultsync.Health
}

// PhaseReporter exposes the scheduler phase
type PhaseReporter interface {
	Phase() resultsync.Phase
	Refreshing() bool
}

// SyncHealthChecker marks the service unhealthy when the latest cycle failed
// and no cycle has succeeded within threshold
type SyncHealthChecker struct {
	source      HealthSource
	scheduler   PhaseReporter
	connections *ConnectionManager
	clock       clockwork.Clock
	threshold   time.Duration
}

func NewSyncHealthChecker(source HealthSource, scheduler PhaseReporter, connections *ConnectionManager, clock clockwork.Clock, threshold time.Duration) *SyncHealthChecker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SyncHealthChecker{
		source:      source,
		scheduler:   scheduler,
		connections: connections,
		clock:       clock,
		threshold:   threshold,
	}
}

func (h *SyncHealthChecker) Check() HealthStatus {
	health := h.source.Health()
	status := HealthStatus{
		Healthy:     true,
		Phase:       h.scheduler.Phase().String(),
		Refreshing:  h.scheduler.Refreshing(),
		LastSuccess: health.LastSuccess,
		LastFailure: health.LastFailure,
		LastError:   health.LastError,
		Errors:      []string{},
	}
	if h.connections != nil {
		status.Connections = h.connections.ConnectionCount()
	}

	failing := !health.LastFailure.IsZero() && health.LastFailure.After(health.LastSuccess)
	if failing {
		if health.LastSuccess.IsZero() {
			status.Healthy = false
			status.Errors = append(status.Errors, "no successful sync since start")
		} else if since := h.clock.Since(health.LastSuccess); since > h.threshold {
			status.Healthy = false
			status.Errors = append(status.Errors, fmt.Sprintf("no successful sync for %s", since.Round(time.Second)))
		}
	}

	return status
}

// HTTP handler helper
func (h *SyncHealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.Check()

	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// Metrics exporter for Prometheus
type PrometheusExporter struct {
	checker *SyncHealthChecker
	metrics *resultsync.CounterMetrics
}

func NewPrometheusExporter(checker *SyncHealthChecker, metrics *resultsync.CounterMetrics) *PrometheusExporter {
	return &PrometheusExporter{checker: checker, metrics: metrics}
}

func (e *PrometheusExporter) Export() string {
	status := e.checker.Check()
	counters := e.metrics.Snapshot()

	var b strings.Builder

	healthy := 0
	if status.Healthy {
		healthy = 1
	}
	fetching := 0
	if status.Phase == resultsync.PhaseFetching.String() {
		fetching = 1
	}

	fmt.Fprintf(&b, "# HELP lotterydash_healthy Whether results are being refreshed\n")
	fmt.Fprintf(&b, "# TYPE lotterydash_healthy gauge\n")
	fmt.Fprintf(&b, "lotterydash_healthy %d\n\n", healthy)

	fmt.Fprintf(&b, "# HELP lotterydash_fetch_in_flight Whether a fetch is currently running\n")
	fmt.Fprintf(&b, "# TYPE lotterydash_fetch_in_flight gauge\n")
	fmt.Fprintf(&b, "lotterydash_fetch_in_flight %d\n\n", fetching)

	fmt.Fprintf(&b, "# HELP lotterydash_syncs_total Sync cycles by trigger and outcome\n")
	fmt.Fprintf(&b, "# TYPE lotterydash_syncs_total counter\n")
	writeCounter(&b, "lotterydash_syncs_total", counters.Succeeded, `status="success"`)
	writeCounter(&b, "lotterydash_syncs_total", counters.Failed, `status="failure"`)
	b.WriteString("\n")

	fmt.Fprintf(&b, "# HELP lotterydash_syncs_skipped_total Triggers skipped while a fetch was in flight\n")
	fmt.Fprintf(&b, "# TYPE lotterydash_syncs_skipped_total counter\n")
	writeCounter(&b, "lotterydash_syncs_skipped_total", counters.Skipped, "")
	b.WriteString("\n")

	fmt.Fprintf(&b, "# HELP lotterydash_last_sync_duration_seconds Duration of the last sync cycle\n")
	fmt.Fprintf(&b, "# TYPE lotterydash_last_sync_duration_seconds gauge\n")
	fmt.Fprintf(&b, "lotterydash_last_sync_duration_seconds %g\n\n", counters.LastDuration.Seconds())

	fmt.Fprintf(&b, "# HELP lotterydash_last_success_timestamp Unix timestamp of the last successful sync\n")
	fmt.Fprintf(&b, "# TYPE lotterydash_last_success_timestamp gauge\n")
	fmt.Fprintf(&b, "lotterydash_last_success_timestamp %d\n\n", unixOrZero(status.LastSuccess))

	fmt.Fprintf(&b, "# HELP lotterydash_websocket_connections Open WebSocket connections\n")
	fmt.Fprintf(&b, "# TYPE lotterydash_websocket_connections gauge\n")
	fmt.Fprintf(&b, "lotterydash_websocket_connections %d\n", status.Connections)

	return b.String()
}

func (e *PrometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.Write([]byte(e.Export()))
}

// writeCounter emits one sample per trigger in a stable order
func writeCounter(b *strings.Builder, name string, counts map[resultsync.Trigger]uint64, extraLabel string) {
	triggers := make([]string, 0, len(counts))
	for trigger := range counts {
		triggers = append(triggers, string(trigger))
	}
	sort.Strings(triggers)

	for _, trigger := range triggers {
		labels := fmt.Sprintf(`trigger=%q`, trigger)
		if extraLabel != "" {
			labels += "," + extraLabel
		}
		fmt.Fprintf(b, "%s{%s} %d\n", name, labels, counts[resultsync.Trigger(trigger)])
	}
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
