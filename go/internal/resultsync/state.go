package resultsync

import (
	"sync"
	"time"

	"github.com/mcdev12/lotterydash/go/internal/models"
)

// GeneralErrorMessage is the single user-visible message for fetch failures
const GeneralErrorMessage = "Error al cargar los resultados de la lotería"

// State holds the snapshot shown to consumers. Snapshots are replaced whole;
// the maps inside a returned snapshot are shared and must be treated as read-only.
type State struct {
	mu          sync.RWMutex
	snapshot    models.Snapshot
	lastSuccess time.Time
	lastFailure time.Time
	lastErr     string
}

// Health summarizes the outcome of recent sync cycles
type Health struct {
	LastSuccess time.Time `json:"last_success"`
	LastFailure time.Time `json:"last_failure"`
	LastError   string    `json:"last_error,omitempty"`
}

func NewState() *State {
	return &State{
		snapshot: models.Snapshot{
			Results:  models.ResultsMapping{},
			Messages: models.MessagesMapping{},
		},
	}
}

// Snapshot returns the current snapshot
func (s *State) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Health returns the last success and failure times
func (s *State) Health() Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Health{LastSuccess: s.lastSuccess, LastFailure: s.lastFailure, LastError: s.lastErr}
}

// restore installs a cached snapshot without touching health
func (s *State) restore(snapshot models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

// replace installs a freshly fetched snapshot and clears the general error
func (s *State) replace(snapshot models.Snapshot, at time.Time) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot.Error = ""
	snapshot.UpdatedAt = at
	s.snapshot = snapshot
	s.lastSuccess = at
	s.lastErr = ""
	return s.snapshot
}

// fail keeps the displayed data and sets the general error message
func (s *State) fail(err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Error = GeneralErrorMessage
	s.lastFailure = at
	s.lastErr = err.Error()
}
