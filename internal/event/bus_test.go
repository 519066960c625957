package event

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/autobullet/internal/event/topic"
)

func TestBusPublishSubscribe(t *testing.T) {
	b := NewBus()
	defer b.Close()

	var got []topic.Topic
	_, err := b.Subscribe("document.*", func(_ context.Context, ev Event) error {
		got = append(got, ev.Topic)
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe error = %v", err)
	}

	ctx := context.Background()
	for _, tp := range []topic.Topic{"document.opened", "editor.active.changed", "document.closed"} {
		if err := b.Publish(ctx, New(tp, nil, "test")); err != nil {
			t.Fatalf("Publish(%q) error = %v", tp, err)
		}
	}

	if len(got) != 2 || got[0] != "document.opened" || got[1] != "document.closed" {
		t.Errorf("unexpected deliveries %v", got)
	}
	if s := b.Stats(); s.EventsPublished != 3 || s.EventsDelivered != 2 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestBusCancel(t *testing.T) {
	b := NewBus()
	defer b.Close()

	calls := 0
	sub, err := b.Subscribe("document.opened", func(context.Context, Event) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe error = %v", err)
	}

	ctx := context.Background()
	_ = b.Publish(ctx, New("document.opened", nil, "test"))
	sub.Cancel()
	sub.Cancel()
	_ = b.Publish(ctx, New("document.opened", nil, "test"))

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if sub.IsActive() {
		t.Error("cancelled subscription reports active")
	}
	if b.Stats().Subscriptions != 0 {
		t.Errorf("expected no subscriptions, got %d", b.Stats().Subscriptions)
	}
	if err := b.Unsubscribe(sub); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestBusCancelDuringDelivery(t *testing.T) {
	b := NewBus()
	defer b.Close()

	var second Subscription
	secondCalls := 0
	_, _ = b.Subscribe("a.b", func(context.Context, Event) error {
		second.Cancel()
		return nil
	})
	second, _ = b.Subscribe("a.b", func(context.Context, Event) error {
		secondCalls++
		return nil
	})

	_ = b.Publish(context.Background(), New("a.b", nil, "test"))
	if secondCalls != 0 {
		t.Errorf("handler cancelled mid-delivery still ran %d times", secondCalls)
	}
}

func TestBusHandlerErrorAndPanic(t *testing.T) {
	b := NewBus()
	defer b.Close()

	boom := errors.New("boom")
	delivered := false
	_, _ = b.Subscribe("a", func(context.Context, Event) error { return boom })
	_, _ = b.Subscribe("a", func(context.Context, Event) error { panic("oops") })
	_, _ = b.Subscribe("a", func(context.Context, Event) error {
		delivered = true
		return nil
	})

	err := b.Publish(context.Background(), New("a", nil, "test"))
	if !errors.Is(err, boom) {
		t.Errorf("expected boom in %v", err)
	}
	if !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("expected ErrHandlerPanic in %v", err)
	}
	var herr *HandlerError
	if !errors.As(err, &herr) || herr.Topic != "a" {
		t.Errorf("expected HandlerError for topic a, got %v", err)
	}
	if !delivered {
		t.Error("failing handlers stopped delivery")
	}
}

func TestBusValidation(t *testing.T) {
	b := NewBus()

	if _, err := b.Subscribe("", func(context.Context, Event) error { return nil }); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
	if _, err := b.Subscribe("a", nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if err := b.Publish(context.Background(), Event{}); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}

	b.Close()
	if _, err := b.Subscribe("a", func(context.Context, Event) error { return nil }); !errors.Is(err, ErrBusClosed) {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
	if err := b.Publish(context.Background(), New("a", nil, "test")); !errors.Is(err, ErrBusClosed) {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
}

func TestNewEventMetadata(t *testing.T) {
	ev := New("document.opened", 42, "workspace")
	if ev.Metadata.ID == "" || ev.Metadata.Timestamp.IsZero() || ev.Metadata.Source != "workspace" {
		t.Errorf("unexpected metadata %+v", ev.Metadata)
	}
	if ev.Payload.(int) != 42 {
		t.Errorf("unexpected payload %v", ev.Payload)
	}
}
