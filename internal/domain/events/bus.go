// Package events carries the "cart or wishlist changed" signal between the
// surfaces of one shopper session.
package events

import (
	"context"
	"sync"
)

// Handler reacts to a change; it must decide for itself what to refetch
type Handler func(ctx context.Context)

// Bus is a typed publish/subscribe signal with no payload. Handlers run
// synchronously on the publisher's goroutine, in subscription order.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]Handler
	order    []int
}

// NewBus creates a bus with no subscribers
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// OnCartOrWishlistChanged subscribes h and returns a function that removes it
func (b *Bus) OnCartOrWishlistChanged(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// PublishCartOrWishlistChanged notifies every current subscriber
func (b *Bus) PublishCartOrWishlistChanged(ctx context.Context) {
	b.mu.Lock()
	snapshot := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		snapshot = append(snapshot, b.handlers[id])
	}
	b.mu.Unlock()

	for _, h := range snapshot {
		h(ctx)
	}
}

// Subscribers returns the number of live subscriptions
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}
