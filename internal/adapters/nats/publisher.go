// Package natsadapter publishes query outcomes to NATS JetStream, purely
// for observability — downstream consumers (dashboards, alerting) subscribe
// to these subjects; the orchestrator never waits on them.
package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/transitline/journeyd/internal/core/domain"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the JOURNEYS stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      "JOURNEYS",
		Subjects:  []string{"journeys.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(cfg); err != nil {
		if _, err := js.UpdateStream(cfg); err != nil {
			return nil, fmt.Errorf("ensure stream JOURNEYS: %w", err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

type journeyComputedEvent struct {
	Origin      domain.StopID   `json:"origin"`
	Destination domain.StopID   `json:"destination"`
	Journeys    []domain.Journey `json:"journeys"`
}

// PublishJourneyComputed implements ports.EventPublisher.
func (p *Publisher) PublishJourneyComputed(_ context.Context, origin, destination domain.StopID, journeys []domain.Journey) error {
	data, err := json.Marshal(journeyComputedEvent{Origin: origin, Destination: destination, Journeys: journeys})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("journeys.computed.%s.%s", origin, destination)
	_, err = p.js.Publish(subject, data)
	return err
}

// PublishPredictorFailure implements ports.EventPublisher.
func (p *Publisher) PublishPredictorFailure(_ context.Context, origin, destination domain.StopID, reason string) error {
	subject := fmt.Sprintf("journeys.predictor_failure.%s.%s", origin, destination)
	_, err := p.js.Publish(subject, []byte(reason))
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// Conn exposes the underlying connection, e.g. for readiness checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}
