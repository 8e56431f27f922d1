// internal/domain/cart/repository.go
package cart

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// DefaultCollection is the remote collection holding line items
const DefaultCollection = "cart"

// Repository owns cart line items. Membership checks list the whole
// collection and filter client-side; nothing here is atomic across calls.
type Repository struct {
	coll   *remote.Collection
	bus    *events.Bus
	logger logrus.FieldLogger
}

// NewRepository creates a cart repository over the named collection
func NewRepository(store remote.Store, collection string, bus *events.Bus, logger logrus.FieldLogger) *Repository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Repository{
		coll:   remote.NewCollection(store, collection),
		bus:    bus,
		logger: logger.WithFields(logrus.Fields{"component": "cart", "collection": collection}),
	}
}

func (r *Repository) listAll(ctx context.Context) ([]LineItem, error) {
	items, err := remote.DecodeAll(ctx, r.coll,
		remote.JSONDecoder(func(li *LineItem, id string) { li.ID = id }),
		func(rec remote.Record, err error) {
			r.logger.WithError(err).WithField("record_id", rec.ID).Warn("Skipping malformed line item")
		})
	if err != nil {
		r.logger.WithError(err).Error("Failed to list cart")
		return nil, err
	}
	return items, nil
}

// ListForUser returns the user's line items in store order
func (r *Repository) ListForUser(ctx context.Context, username string) ([]LineItem, error) {
	all, err := r.listAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, 0)
	for _, li := range all {
		if li.Username == username {
			items = append(items, li)
		}
	}
	return items, nil
}

// Count returns the number of line items the user owns
func (r *Repository) Count(ctx context.Context, username string) (int, error) {
	items, err := r.ListForUser(ctx, username)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Find returns the user's line item for key, if any
func (r *Repository) Find(ctx context.Context, username string, key catalog.ProductKey) (LineItem, bool, error) {
	items, err := r.ListForUser(ctx, username)
	if err != nil {
		return LineItem{}, false, err
	}
	for _, li := range items {
		if li.Key() == key {
			return li, true, nil
		}
	}
	return LineItem{}, false, nil
}

// AddIfAbsent creates a quantity-1 line item unless the user already has one
// for the product. It returns the existing item and false when one is found.
//
// The absence check and the create are separate round trips. Two concurrent
// calls for the same product can both pass the check and create duplicates.
func (r *Repository) AddIfAbsent(ctx context.Context, username string, p catalog.Product) (LineItem, bool, error) {
	existing, found, err := r.Find(ctx, username, p.Key())
	if err != nil {
		return LineItem{}, false, err
	}
	if found {
		return existing, false, nil
	}

	item := NewLineItem(username, p)
	rec, err := r.coll.Create(ctx, item)
	if err != nil {
		r.logger.WithError(err).WithField("username", username).Error("Failed to add line item")
		return LineItem{}, false, err
	}
	item.ID = rec.ID

	r.logger.WithFields(logrus.Fields{"username": username, "record_id": rec.ID, "model": p.Model}).Info("Line item added")
	r.publish(ctx)
	return item, true, nil
}

// SetQuantity stores max(1, requested) on the record and returns the stored
// value. Ownership is not re-validated.
func (r *Repository) SetQuantity(ctx context.Context, id string, requested int) (int, error) {
	quantity := max(1, requested)
	if err := r.coll.Patch(ctx, id, map[string]any{"quantity": quantity}); err != nil {
		r.logger.WithError(err).WithField("record_id", id).Error("Failed to update quantity")
		return 0, err
	}
	r.publish(ctx)
	return quantity, nil
}

// Increment raises the item's quantity by one
func (r *Repository) Increment(ctx context.Context, item LineItem) (int, error) {
	return r.SetQuantity(ctx, item.ID, item.EffectiveQuantity()+1)
}

// Decrement lowers the item's quantity by one, never below one
func (r *Repository) Decrement(ctx context.Context, item LineItem) (int, error) {
	return r.SetQuantity(ctx, item.ID, item.EffectiveQuantity()-1)
}

// Remove deletes the line item
func (r *Repository) Remove(ctx context.Context, id string) error {
	if err := r.Discard(ctx, id); err != nil {
		return err
	}
	r.publish(ctx)
	return nil
}

// Discard deletes the line item without publishing a change, for callers
// that publish once after a batch
func (r *Repository) Discard(ctx context.Context, id string) error {
	if err := r.coll.Delete(ctx, id); err != nil {
		r.logger.WithError(err).WithField("record_id", id).Error("Failed to delete line item")
		return err
	}
	return nil
}

// Get fetches one line item by id
func (r *Repository) Get(ctx context.Context, id string) (LineItem, error) {
	rec, err := r.coll.Get(ctx, id)
	if err != nil {
		return LineItem{}, err
	}
	var li LineItem
	if err := rec.Decode(&li); err != nil {
		return LineItem{}, err
	}
	li.ID = rec.ID
	return li, nil
}

func (r *Repository) publish(ctx context.Context) {
	if r.bus != nil {
		r.bus.PublishCartOrWishlistChanged(ctx)
	}
}
