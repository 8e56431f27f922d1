// Package counts keeps the navigation badge numbers for one session.
package counts

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/domain/session"
)

// Counts is the derived badge state
type Counts struct {
	Cart     int `json:"cartCount"`
	Wishlist int `json:"wishlistCount"`
}

// Counter counts a user's records in one collection
type Counter interface {
	Count(ctx context.Context, username string) (int, error)
}

// Session is the part of the session context the cache reads
type Session interface {
	CurrentUsername() (string, bool)
	OnTransition(h session.TransitionHandler) (unsubscribe func())
}

type field int

const (
	cartField field = iota
	wishlistField
)

// Cache recomputes Counts from the repositories on every change signal.
// Each field carries a request epoch: a result is applied only when no
// newer request for that field has already been applied.
type Cache struct {
	session  Session
	counters [2]Counter
	logger   logrus.FieldLogger

	mu        sync.Mutex
	counts    Counts
	issued    [2]uint64
	applied   [2]uint64
	observers []func(Counts)
	closers   []func()
}

// New creates a cache and subscribes it to bus and to session transitions
func New(sess Session, bus *events.Bus, carts, wishlists Counter, logger logrus.FieldLogger) *Cache {
	c := &Cache{
		session:  sess,
		counters: [2]Counter{carts, wishlists},
		logger:   logger.WithField("component", "counts"),
	}

	if bus != nil {
		c.closers = append(c.closers, bus.OnCartOrWishlistChanged(func(ctx context.Context) {
			c.recomputeLogged(ctx)
		}))
	}
	c.closers = append(c.closers, sess.OnTransition(func(ctx context.Context, t session.Transition) {
		if t.Kind == session.TransitionLogout {
			c.reset()
			return
		}
		c.recomputeLogged(ctx)
	}))
	return c
}

// Counts returns the current badge numbers
func (c *Cache) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts
}

// OnChange registers an observer called after counts change
func (c *Cache) OnChange(fn func(Counts)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Close drops the cache's subscriptions
func (c *Cache) Close() {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()
	for _, fn := range closers {
		fn()
	}
}

// Recompute refetches both counts for the current user. The two fetches are
// independent; a failure in one still applies the other.
func (c *Cache) Recompute(ctx context.Context) (Counts, error) {
	username, ok := c.session.CurrentUsername()
	if !ok {
		c.reset()
		return c.Counts(), nil
	}

	var epochs [2]uint64
	c.mu.Lock()
	for f := range c.issued {
		c.issued[f]++
		epochs[f] = c.issued[f]
	}
	c.mu.Unlock()

	var g errgroup.Group
	for _, f := range []field{cartField, wishlistField} {
		g.Go(func() error {
			n, err := c.counters[f].Count(ctx, username)
			if err != nil {
				return err
			}
			c.apply(f, epochs[f], n)
			return nil
		})
	}
	err := g.Wait()
	return c.Counts(), err
}

func (c *Cache) recomputeLogged(ctx context.Context) {
	if _, err := c.Recompute(ctx); err != nil {
		c.logger.WithError(err).Warn("Failed to recompute counts")
	}
}

func (c *Cache) apply(f field, epoch uint64, n int) {
	c.mu.Lock()
	if epoch <= c.applied[f] {
		c.mu.Unlock()
		c.logger.WithField("epoch", epoch).Debug("Discarding stale count")
		return
	}
	c.applied[f] = epoch
	before := c.counts
	switch f {
	case cartField:
		c.counts.Cart = n
	case wishlistField:
		c.counts.Wishlist = n
	}
	after := c.counts
	observers := append([]func(Counts){}, c.observers...)
	c.mu.Unlock()

	if after != before {
		for _, fn := range observers {
			fn(after)
		}
	}
}

// reset zeroes both counts and supersedes every in-flight fetch
func (c *Cache) reset() {
	c.mu.Lock()
	for f := range c.issued {
		c.issued[f]++
		c.applied[f] = c.issued[f]
	}
	changed := c.counts != Counts{}
	c.counts = Counts{}
	observers := append([]func(Counts){}, c.observers...)
	c.mu.Unlock()

	if changed {
		for _, fn := range observers {
			fn(Counts{})
		}
	}
}
