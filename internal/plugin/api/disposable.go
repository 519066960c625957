package api

import "sync"

// Disposable releases a registration made with the host.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable.
type DisposableFunc func()

// Dispose calls f.
func (f DisposableFunc) Dispose() {
	if f != nil {
		f()
	}
}

// Disposables collects registrations and releases them together.
// Items are disposed in reverse order of addition.
type Disposables struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

// Add registers items for disposal. Items added after Dispose are
// disposed immediately.
func (d *Disposables) Add(items ...Disposable) {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		for _, item := range items {
			if item != nil {
				item.Dispose()
			}
		}
		return
	}
	for _, item := range items {
		if item != nil {
			d.items = append(d.items, item)
		}
	}
	d.mu.Unlock()
}

// Len returns the number of pending items.
func (d *Disposables) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Dispose releases all items. Calling it more than once is a no-op.
func (d *Disposables) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	items := d.items
	d.items = nil
	d.mu.Unlock()

	for i := len(items) - 1; i >= 0; i-- {
		items[i].Dispose()
	}
}
