// Package remote defines the keyed-record collection contract every storage
// backend implements. List always returns the whole collection; no backend
// filters by field, so membership and count queries scan client-side.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get, Patch and Delete when the record id is unknown
var ErrNotFound = errors.New("record not found")

// Record is one stored document together with its store-assigned id
type Record struct {
	ID   string
	Data json.RawMessage
}

// Decode unmarshals the record document into v
func (r Record) Decode(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode record %s: %w", r.ID, err)
	}
	return nil
}

// Store is a remote keyed-record store holding named collections
type Store interface {
	List(ctx context.Context, collection string) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Create(ctx context.Context, collection string, payload any) (Record, error)
	Patch(ctx context.Context, collection, id string, partial map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// Marshal encodes a create payload into a document
func Marshal(payload any) (json.RawMessage, error) {
	if raw, ok := payload.(json.RawMessage); ok {
		return raw, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

// MergePatch applies partial onto a JSON object document and returns the result
func MergePatch(doc json.RawMessage, partial map[string]any) (json.RawMessage, error) {
	fields := map[string]any{}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &fields); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
	}
	for k, v := range partial {
		fields[k] = v
	}
	return json.Marshal(fields)
}
