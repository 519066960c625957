package event

import (
	"sync/atomic"

	"github.com/dshills/autobullet/internal/event/topic"
)

// Subscription represents an active event subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() topic.Topic

	// IsActive returns true if the subscription can receive events.
	IsActive() bool

	// Cancel permanently cancels the subscription and removes it from its
	// bus. Cancelling twice is a no-op.
	Cancel()

	// Dispose is an alias for Cancel so subscriptions can be tracked
	// alongside other disposable resources.
	Dispose()
}

// subscription is the default Subscription implementation.
type subscription struct {
	id        string
	pattern   topic.Topic
	handler   HandlerFunc
	bus       *bus
	cancelled atomic.Bool
}

func (s *subscription) ID() string         { return s.id }
func (s *subscription) Topic() topic.Topic { return s.pattern }
func (s *subscription) IsActive() bool     { return !s.cancelled.Load() }
func (s *subscription) Dispose()           { s.Cancel() }

func (s *subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.bus.remove(s.id)
}
