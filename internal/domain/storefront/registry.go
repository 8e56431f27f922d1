// internal/domain/storefront/registry.go
package storefront

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Factory builds the shopper for a session id
type Factory func(ctx context.Context, sessionID string) (*Shopper, error)

// Registry caches live shoppers by session id. Evicted shoppers are closed;
// their session state survives in the session store and is restored on the
// next request.
type Registry struct {
	mu      sync.Mutex
	cache   *lru.Cache
	factory Factory
}

// NewRegistry creates a registry holding at most size shoppers
func NewRegistry(size int, factory Factory) (*Registry, error) {
	cache, err := lru.NewWithEvict(size, func(_ interface{}, value interface{}) {
		if s, ok := value.(*Shopper); ok {
			s.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shopper cache: %w", err)
	}
	return &Registry{cache: cache, factory: factory}, nil
}

// Get returns the shopper for sessionID, building it on first use
func (r *Registry) Get(ctx context.Context, sessionID string) (*Shopper, error) {
	if v, ok := r.cache.Get(sessionID); ok {
		return v.(*Shopper), nil
	}

	s, err := r.factory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// another request for the same session may have won the race
	if v, ok := r.cache.Get(sessionID); ok {
		s.Close()
		return v.(*Shopper), nil
	}
	r.cache.Add(sessionID, s)
	return s, nil
}

// Len returns the number of cached shoppers
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close closes and drops every cached shopper
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Purge()
}
