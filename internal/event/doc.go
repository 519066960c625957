// Package event provides the synchronous event bus the editor host uses to
// announce editor notifications (active editor changed, document opened,
// document language changed).
//
// Delivery is synchronous and in subscription order: Publish returns after
// every matching handler has run. Handlers may subscribe or cancel
// subscriptions while an event is being delivered; cancelled subscriptions
// stop receiving events immediately.
//
// Basic usage:
//
//	bus := event.NewBus()
//	sub, err := bus.Subscribe(events.TopicDocumentOpened, func(ctx context.Context, ev event.Event) error {
//	    doc := ev.Payload.(events.DocumentOpened)
//	    ...
//	    return nil
//	})
//	defer sub.Cancel()
//
//	_ = bus.Publish(ctx, event.New(events.TopicDocumentOpened, events.DocumentOpened{...}, "workspace"))
package event
