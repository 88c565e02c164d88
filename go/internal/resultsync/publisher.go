package resultsync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/lotterydash/go/internal/models"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// DefaultSubject is where snapshot updates are published
const DefaultSubject = "lottery.results.updated"

// EventTypeResultsUpdated tags every published envelope
const EventTypeResultsUpdated = "ResultsUpdated"

// UpdateEvent is the envelope published for every applied snapshot
type UpdateEvent struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   models.Snapshot `json:"payload"`
}

// NewUpdateEvent wraps snapshot in a fresh envelope
func NewUpdateEvent(snapshot models.Snapshot, at time.Time) UpdateEvent {
	return UpdateEvent{
		EventID:   uuid.New().String(),
		EventType: EventTypeResultsUpdated,
		Timestamp: at,
		Payload:   snapshot,
	}
}

// MessagePublisher is the subset of *nats.Conn used for publishing
type MessagePublisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes snapshot updates to a NATS subject
type NATSPublisher struct {
	conn    MessagePublisher
	subject string
}

func NewNATSPublisher(conn MessagePublisher, subject string) *NATSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{conn: conn, subject: subject}
}

// ConnectNATS dials url with the reconnect behaviour used across the service
func ConnectNATS(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

// Publish sends one envelope for snapshot
func (p *NATSPublisher) Publish(ctx context.Context, snapshot models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event := NewUpdateEvent(snapshot, time.Now().UTC())
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}

	log.Debug().
		Str("subject", p.subject).
		Str("event_id", event.EventID).
		Int("size", len(data)).
		Msg("published results update")
	return nil
}

// ResultsUpdated implements UpdateListener; publish failures are logged only
func (p *NATSPublisher) ResultsUpdated(ctx context.Context, snapshot models.Snapshot) {
	if err := p.Publish(ctx, snapshot); err != nil {
		log.Error().Err(err).Str("subject", p.subject).Msg("failed to publish results update")
	}
}
