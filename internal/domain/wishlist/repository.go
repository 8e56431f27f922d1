// internal/domain/wishlist/repository.go
package wishlist

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/domain/cart"
	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// DefaultCollection is the remote collection holding wishlist entries
const DefaultCollection = "wishlist"

// Repository owns wishlist entries
type Repository struct {
	coll   *remote.Collection
	cart   *cart.Repository
	bus    *events.Bus
	logger logrus.FieldLogger
}

// NewRepository creates a wishlist repository; carts receives moved entries
func NewRepository(store remote.Store, collection string, carts *cart.Repository, bus *events.Bus, logger logrus.FieldLogger) *Repository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Repository{
		coll:   remote.NewCollection(store, collection),
		cart:   carts,
		bus:    bus,
		logger: logger.WithFields(logrus.Fields{"component": "wishlist", "collection": collection}),
	}
}

// ListForUser returns the user's entries in store order
func (r *Repository) ListForUser(ctx context.Context, username string) ([]Entry, error) {
	all, err := remote.DecodeAll(ctx, r.coll,
		remote.JSONDecoder(func(e *Entry, id string) { e.ID = id }),
		func(rec remote.Record, err error) {
			r.logger.WithError(err).WithField("record_id", rec.ID).Warn("Skipping malformed wishlist entry")
		})
	if err != nil {
		r.logger.WithError(err).Error("Failed to list wishlist")
		return nil, err
	}

	entries := make([]Entry, 0)
	for _, e := range all {
		if e.Username == username {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Count returns the number of entries the user owns
func (r *Repository) Count(ctx context.Context, username string) (int, error) {
	entries, err := r.ListForUser(ctx, username)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Keys indexes the user's entries by product key, for marking listings
func (r *Repository) Keys(ctx context.Context, username string) (map[catalog.ProductKey]Entry, error) {
	entries, err := r.ListForUser(ctx, username)
	if err != nil {
		return nil, err
	}
	keys := make(map[catalog.ProductKey]Entry, len(entries))
	for _, e := range entries {
		if _, seen := keys[e.Key()]; !seen {
			keys[e.Key()] = e
		}
	}
	return keys, nil
}

// Contains reports whether the user saved the product
func (r *Repository) Contains(ctx context.Context, username string, key catalog.ProductKey) (bool, error) {
	keys, err := r.Keys(ctx, username)
	if err != nil {
		return false, err
	}
	_, ok := keys[key]
	return ok, nil
}

// Toggle deletes the user's entry for the product when one exists and
// creates one otherwise. Like the cart add, the check and the write are
// separate round trips.
func (r *Repository) Toggle(ctx context.Context, username string, p catalog.Product) (ToggleResult, error) {
	entries, err := r.ListForUser(ctx, username)
	if err != nil {
		return ToggleResult{}, err
	}

	key := p.Key()
	for _, e := range entries {
		if e.Key() != key {
			continue
		}
		if err := r.coll.Delete(ctx, e.ID); err != nil {
			r.logger.WithError(err).WithField("record_id", e.ID).Error("Failed to remove wishlist entry")
			return ToggleResult{}, err
		}
		r.publish(ctx)
		return ToggleResult{Outcome: Removed, Entry: e}, nil
	}

	entry := NewEntry(username, p)
	rec, err := r.coll.Create(ctx, entry)
	if err != nil {
		r.logger.WithError(err).WithField("username", username).Error("Failed to add wishlist entry")
		return ToggleResult{}, err
	}
	entry.ID = rec.ID
	r.publish(ctx)
	return ToggleResult{Outcome: Added, Entry: entry}, nil
}

// Remove deletes one entry
func (r *Repository) Remove(ctx context.Context, id string) error {
	if err := r.coll.Delete(ctx, id); err != nil {
		r.logger.WithError(err).WithField("record_id", id).Error("Failed to remove wishlist entry")
		return err
	}
	r.publish(ctx)
	return nil
}

// Get fetches one entry by id
func (r *Repository) Get(ctx context.Context, id string) (Entry, error) {
	rec, err := r.coll.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := rec.Decode(&e); err != nil {
		return Entry{}, err
	}
	e.ID = rec.ID
	return e, nil
}

// MoveToCart adds the entry's product to the owner's cart, then deletes the
// entry. An item already in the cart still counts as moved. The two steps
// are not atomic and nothing is rolled back: when the delete fails the
// product stays in both collections and the delete error is returned.
func (r *Repository) MoveToCart(ctx context.Context, entry Entry) (MoveResult, error) {
	item, added, err := r.cart.AddIfAbsent(ctx, entry.Username, entry.AsProduct())
	if err != nil {
		return MoveResult{}, err
	}
	result := MoveResult{AddedToCart: added, CartItemID: item.ID}

	if err := r.coll.Delete(ctx, entry.ID); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"record_id":    entry.ID,
			"cart_item_id": item.ID,
			"username":     entry.Username,
		}).Error("Moved to cart but wishlist delete failed; entry remains in both collections")
		return result, err
	}

	r.publish(ctx)
	return result, nil
}

func (r *Repository) publish(ctx context.Context) {
	if r.bus != nil {
		r.bus.PublishCartOrWishlistChanged(ctx)
	}
}
