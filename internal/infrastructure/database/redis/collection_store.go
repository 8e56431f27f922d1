// internal/infrastructure/database/redis/collection_store.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// maxPatchRetries bounds optimistic retries when a patched record changes
// under the transaction
const maxPatchRetries = 5

// CollectionStore keeps each collection in one hash of id -> JSON document.
// Ids are UUIDv7, so sorting them gives creation order.
type CollectionStore struct {
	client *Client
}

// NewCollectionStore creates a collection store on client
func NewCollectionStore(client *Client) *CollectionStore {
	return &CollectionStore{client: client}
}

func (s *CollectionStore) key(collection string) string {
	return s.client.Key("collection", collection)
}

// List implements remote.Store
func (s *CollectionStore) List(ctx context.Context, collection string) ([]remote.Record, error) {
	docs, err := s.client.Redis.HGetAll(ctx, s.key(collection)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]remote.Record, len(ids))
	for i, id := range ids {
		records[i] = remote.Record{ID: id, Data: json.RawMessage(docs[id])}
	}
	return records, nil
}

// Get implements remote.Store
func (s *CollectionStore) Get(ctx context.Context, collection, id string) (remote.Record, error) {
	doc, err := s.client.Redis.HGet(ctx, s.key(collection), id).Result()
	if errors.Is(err, redis.Nil) {
		return remote.Record{}, fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
	}
	if err != nil {
		return remote.Record{}, err
	}
	return remote.Record{ID: id, Data: json.RawMessage(doc)}, nil
}

// Create implements remote.Store
func (s *CollectionStore) Create(ctx context.Context, collection string, payload any) (remote.Record, error) {
	data, err := remote.Marshal(payload)
	if err != nil {
		return remote.Record{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return remote.Record{}, fmt.Errorf("generate id: %w", err)
	}
	if err := s.client.Redis.HSet(ctx, s.key(collection), id.String(), string(data)).Err(); err != nil {
		return remote.Record{}, err
	}
	return remote.Record{ID: id.String(), Data: data}, nil
}

// Patch implements remote.Store as a watched read-merge-write
func (s *CollectionStore) Patch(ctx context.Context, collection, id string, partial map[string]any) error {
	key := s.key(collection)
	txf := func(tx *redis.Tx) error {
		doc, err := tx.HGet(ctx, key, id).Result()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
		}
		if err != nil {
			return err
		}
		merged, err := remote.MergePatch(json.RawMessage(doc), partial)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, string(merged))
			return nil
		})
		return err
	}

	for i := 0; i < maxPatchRetries; i++ {
		err := s.client.Redis.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("patch %s/%s: too much contention", collection, id)
}

// Delete implements remote.Store
func (s *CollectionStore) Delete(ctx context.Context, collection, id string) error {
	n, err := s.client.Redis.HDel(ctx, s.key(collection), id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
	}
	return nil
}
