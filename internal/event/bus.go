package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/autobullet/internal/event/topic"
)

// Bus is the event bus interface.
type Bus interface {
	// Publish delivers ev synchronously to every active subscription whose
	// pattern matches the event topic. Handler errors and panics do not
	// stop delivery; they are joined into the returned error.
	Publish(ctx context.Context, ev Event) error

	// Subscribe registers fn for events matching pattern.
	Subscribe(pattern topic.Topic, fn HandlerFunc) (Subscription, error)

	// Unsubscribe cancels sub.
	Unsubscribe(sub Subscription) error

	// Close cancels every subscription and rejects further use.
	Close()

	// Stats returns delivery counters.
	Stats() Stats
}

// Stats holds bus delivery counters.
type Stats struct {
	EventsPublished uint64
	EventsDelivered uint64
	HandlerErrors   uint64
	HandlerPanics   uint64
	Subscriptions   int
}

// bus is the default Bus implementation.
type bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	closed bool

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates a new synchronous event bus.
func NewBus() Bus {
	return &bus{}
}

// Subscribe implements Bus.
func (b *bus) Subscribe(pattern topic.Topic, fn HandlerFunc) (Subscription, error) {
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}
	if fn == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	sub := &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: fn,
		bus:     b,
	}
	b.subs = append(b.subs, sub)
	return sub, nil
}

// Unsubscribe implements Bus.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.RLock()
	found := false
	for _, s := range b.subs {
		if s.id == sub.ID() {
			found = true
			break
		}
	}
	b.mu.RUnlock()

	if !found {
		return ErrSubscriptionNotFound
	}
	sub.Cancel()
	return nil
}

// Publish implements Bus.
func (b *bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Topic.IsValid() {
		return ErrInvalidTopic
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	matched := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if ev.Topic.Matches(s.pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	b.eventsPublished.Add(1)

	var errs []error
	for _, s := range matched {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !s.IsActive() {
			continue
		}
		if err := b.deliver(ctx, s, ev); err != nil {
			errs = append(errs, &HandlerError{
				SubscriptionID: s.id,
				Topic:          ev.Topic.String(),
				Err:            err,
			})
		}
	}
	return errors.Join(errs...)
}

// deliver runs one handler, converting a panic into ErrHandlerPanic.
func (b *bus) deliver(ctx context.Context, s *subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()

	if err := s.handler(ctx, ev); err != nil {
		b.handlerErrors.Add(1)
		return err
	}
	b.eventsDelivered.Add(1)
	return nil
}

// Close implements Bus.
func (b *bus) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.closed = true
	b.mu.Unlock()

	for _, s := range subs {
		s.cancelled.Store(true)
	}
}

// Stats implements Bus.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished: b.eventsPublished.Load(),
		EventsDelivered: b.eventsDelivered.Load(),
		HandlerErrors:   b.handlerErrors.Load(),
		HandlerPanics:   b.handlerPanics.Load(),
		Subscriptions:   n,
	}
}

func (b *bus) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}
