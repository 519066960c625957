package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/autobullet/internal/event/topic"
)

// Event represents an event in the system.
// Events are immutable once created.
type Event struct {
	// Topic is the hierarchical event type (e.g., "document.opened").
	Topic topic.Topic

	// Payload contains the event-specific data, usually a type from the
	// events package.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the module that published the event.
	Source string
}

// New creates a new event with the given topic and payload.
func New(t topic.Topic, payload any, source string) Event {
	return Event{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// HandlerFunc handles a delivered event.
type HandlerFunc func(ctx context.Context, ev Event) error
