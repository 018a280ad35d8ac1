package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

// EvaluationCompleted is emitted after an evaluation has been stored.
type EvaluationCompleted struct {
	ID           string    `json:"id"`
	EvaluationID uint      `json:"evaluation_id"`
	StudentID    uint      `json:"student_id"`
	TopicSlug    string    `json:"topic_slug,omitempty"`
	Total        int       `json:"total"`
	Tier         string    `json:"tier"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher delivers evaluation events to downstream consumers.
type Publisher interface {
	PublishEvaluationCompleted(ctx context.Context, event EvaluationCompleted) error
}

// NATSPublisher publishes events on a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher constructs a publisher. A nil connection yields a no-op publisher.
func NewNATSPublisher(conn *nats.Conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subject}
}

// PublishEvaluationCompleted encodes the event as JSON and publishes it.
func (p *NATSPublisher) PublishEvaluationCompleted(ctx context.Context, event EvaluationCompleted) error {
	if p == nil || p.conn == nil || p.subject == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.conn.Publish(p.subject+".completed", payload)
}
