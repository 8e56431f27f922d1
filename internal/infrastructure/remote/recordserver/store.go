// Package recordserver talks to a generic CRUD record server (json-server
// style): every collection is a REST resource whose records carry an "id".
package recordserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/httpjson"
)

// Store implements remote.Store over a record server
type Store struct {
	http *httpjson.Client
}

// New creates a store rooted at baseURL
func New(baseURL string, timeout time.Duration, opts ...httpjson.Option) *Store {
	return &Store{http: httpjson.New(baseURL, timeout, opts...)}
}

func path(collection string, id ...string) string {
	p := "/" + httpjson.Escape(collection)
	if len(id) > 0 {
		p += "/" + httpjson.Escape(id[0])
	}
	return p
}

// recordID reads the "id" member, which may be a number or a string
func recordID(doc json.RawMessage) (string, error) {
	var head struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return "", fmt.Errorf("decode record: %w", err)
	}
	raw := bytes.TrimSpace(head.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("record without id")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode record id: %w", err)
		}
		return s, nil
	}
	return string(raw), nil
}

func toRecord(doc json.RawMessage) (remote.Record, error) {
	id, err := recordID(doc)
	if err != nil {
		return remote.Record{}, err
	}
	return remote.Record{ID: id, Data: doc}, nil
}

// List implements remote.Store
func (s *Store) List(ctx context.Context, collection string) ([]remote.Record, error) {
	var docs []json.RawMessage
	if err := s.http.DoJSON(ctx, http.MethodGet, path(collection), nil, &docs); err != nil {
		return nil, err
	}
	records := make([]remote.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := toRecord(doc)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get implements remote.Store
func (s *Store) Get(ctx context.Context, collection, id string) (remote.Record, error) {
	data, err := s.http.Do(ctx, http.MethodGet, path(collection, id), nil)
	if err != nil {
		return remote.Record{}, err
	}
	return remote.Record{ID: id, Data: data}, nil
}

// Create implements remote.Store; the server assigns the id
func (s *Store) Create(ctx context.Context, collection string, payload any) (remote.Record, error) {
	data, err := s.http.Do(ctx, http.MethodPost, path(collection), payload)
	if err != nil {
		return remote.Record{}, err
	}
	return toRecord(data)
}

// Patch implements remote.Store
func (s *Store) Patch(ctx context.Context, collection, id string, partial map[string]any) error {
	_, err := s.http.Do(ctx, http.MethodPatch, path(collection, id), partial)
	return err
}

// Delete implements remote.Store
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.http.Do(ctx, http.MethodDelete, path(collection, id), nil)
	return err
}
