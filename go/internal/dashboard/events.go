package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/lotterydash/go/internal/models"
)

// EventType represents the type of results event pushed to clients
type EventType string

const (
	// EventTypeSnapshot is sent once when a client connects
	EventTypeSnapshot EventType = "Snapshot"
	// EventTypeResultsUpdated is broadcast after every successful sync
	EventTypeResultsUpdated EventType = "ResultsUpdated"
)

// ResultsEvent represents the structure of every pushed message
type ResultsEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      models.Snapshot `json:"data"`
}

func newResultsEvent(eventType EventType, snapshot models.Snapshot) *ResultsEvent {
	return &ResultsEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      snapshot,
	}
}
