// internal/adapter/events/publisher.go

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"skraper/internal/domain/scrape"
	"skraper/internal/metrics"
)

// Event types, appended to the events topic
const (
	TypeCompleted = "completed"
	TypeFailed    = "failed"
)

// Publisher implements scrape.EventPublisher on a Bus
type Publisher struct {
	bus   Bus
	topic string
}

// NewPublisher creates a publisher writing to <topic>.completed and <topic>.failed
func NewPublisher(bus Bus, topic string) *Publisher {
	return &Publisher{bus: bus, topic: topic}
}

// Subject returns the subject an event type is published on
func (p *Publisher) Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", p.topic, eventType)
}

// Wildcard returns the subject matching every event of the topic
func (p *Publisher) Wildcard() string {
	return p.topic + ".>"
}

// PublishCompleted publishes a successful run
func (p *Publisher) PublishCompleted(ctx context.Context, event scrape.Event) error {
	event.Type = TypeCompleted
	return p.publish(ctx, event)
}

// PublishFailed publishes a failed run
func (p *Publisher) PublishFailed(ctx context.Context, event scrape.Event) error {
	event.Type = TypeFailed
	return p.publish(ctx, event)
}

func (p *Publisher) publish(ctx context.Context, event scrape.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	if err := p.bus.Publish(p.Subject(event.Type), data); err != nil {
		metrics.Get().EventsPublishedTotal.WithLabelValues(event.Type, metrics.OutcomeFailed).Inc()
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	metrics.Get().EventsPublishedTotal.WithLabelValues(event.Type, metrics.OutcomeSuccess).Inc()
	return nil
}
