package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

// Collection is a Store bound to one collection name. Every failure it
// returns is an apperr transport failure; calls are never retried.
type Collection struct {
	store Store
	name  string
}

// NewCollection binds store to the named collection
func NewCollection(store Store, name string) *Collection {
	return &Collection{store: store, name: name}
}

// Name returns the collection name
func (c *Collection) Name() string {
	return c.name
}

// List fetches every record in the collection
func (c *Collection) List(ctx context.Context) ([]Record, error) {
	records, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, apperr.Transport(fmt.Sprintf("list %s", c.name), err)
	}
	return records, nil
}

// Get fetches one record
func (c *Collection) Get(ctx context.Context, id string) (Record, error) {
	rec, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return Record{}, apperr.Transport(fmt.Sprintf("get %s/%s", c.name, id), err)
	}
	return rec, nil
}

// Create stores payload under a new store-assigned id
func (c *Collection) Create(ctx context.Context, payload any) (Record, error) {
	rec, err := c.store.Create(ctx, c.name, payload)
	if err != nil {
		return Record{}, apperr.Transport(fmt.Sprintf("create %s", c.name), err)
	}
	return rec, nil
}

// Patch merges partial into the record's top-level fields
func (c *Collection) Patch(ctx context.Context, id string, partial map[string]any) error {
	if err := c.store.Patch(ctx, c.name, id, partial); err != nil {
		return apperr.Transport(fmt.Sprintf("patch %s/%s", c.name, id), err)
	}
	return nil
}

// Delete removes one record
func (c *Collection) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, c.name, id); err != nil {
		return apperr.Transport(fmt.Sprintf("delete %s/%s", c.name, id), err)
	}
	return nil
}

// DecodeAll lists the collection and decodes every record with decode.
// Records that fail to decode are skipped and reported through skipped.
func DecodeAll[T any](ctx context.Context, c *Collection, decode func(Record) (T, error), skipped func(Record, error)) ([]T, error) {
	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		v, err := decode(rec)
		if err != nil {
			if skipped != nil {
				skipped(rec, err)
			}
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// JSONDecoder decodes a record into T and passes the id to setID
func JSONDecoder[T any](setID func(*T, string)) func(Record) (T, error) {
	return func(rec Record) (T, error) {
		var v T
		if err := json.Unmarshal(rec.Data, &v); err != nil {
			return v, fmt.Errorf("decode record %s: %w", rec.ID, err)
		}
		if setID != nil {
			setID(&v, rec.ID)
		}
		return v, nil
	}
}
