// Package rtdb talks to a path-keyed realtime document store over its REST
// surface: collections live at /<name>.json and records at /<name>/<id>.json.
package rtdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/httpjson"
)

// Store implements remote.Store over the REST surface
type Store struct {
	http *httpjson.Client
}

// New creates a store rooted at baseURL; a non-empty authToken is sent as
// the auth query parameter
func New(baseURL, authToken string, timeout time.Duration, opts ...httpjson.Option) *Store {
	if authToken != "" {
		opts = append(opts, httpjson.WithQuery("auth", authToken))
	}
	return &Store{http: httpjson.New(baseURL, timeout, opts...)}
}

func path(collection string, id ...string) string {
	p := "/" + httpjson.Escape(collection)
	if len(id) > 0 {
		p += "/" + httpjson.Escape(id[0])
	}
	return p + ".json"
}

func isNull(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

// decodeCollection reads either an object keyed by record id, kept in
// server order, or an index-keyed array whose holes are null
func decodeCollection(data json.RawMessage) ([]remote.Record, error) {
	if isNull(data) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	var records []remote.Record
	switch tok {
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			var doc json.RawMessage
			if err := dec.Decode(&doc); err != nil {
				return nil, err
			}
			if isNull(doc) {
				continue
			}
			records = append(records, remote.Record{ID: key, Data: doc})
		}
	case json.Delim('['):
		for i := 0; dec.More(); i++ {
			var doc json.RawMessage
			if err := dec.Decode(&doc); err != nil {
				return nil, err
			}
			if isNull(doc) {
				continue
			}
			records = append(records, remote.Record{ID: strconv.Itoa(i), Data: doc})
		}
	default:
		return nil, fmt.Errorf("unexpected collection value %v", tok)
	}
	return records, nil
}

// List implements remote.Store
func (s *Store) List(ctx context.Context, collection string) ([]remote.Record, error) {
	data, err := s.http.Do(ctx, http.MethodGet, path(collection), nil)
	if err != nil {
		return nil, err
	}
	records, err := decodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return records, nil
}

// Get implements remote.Store; a null document is not found
func (s *Store) Get(ctx context.Context, collection, id string) (remote.Record, error) {
	data, err := s.http.Do(ctx, http.MethodGet, path(collection, id), nil)
	if err != nil {
		return remote.Record{}, err
	}
	if isNull(data) {
		return remote.Record{}, fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
	}
	return remote.Record{ID: id, Data: data}, nil
}

// Create implements remote.Store; the server answers with the push id
func (s *Store) Create(ctx context.Context, collection string, payload any) (remote.Record, error) {
	doc, err := remote.Marshal(payload)
	if err != nil {
		return remote.Record{}, err
	}
	var created struct {
		Name string `json:"name"`
	}
	if err := s.http.DoJSON(ctx, http.MethodPost, path(collection), doc, &created); err != nil {
		return remote.Record{}, err
	}
	if created.Name == "" {
		return remote.Record{}, fmt.Errorf("create %s: response carried no id", collection)
	}
	return remote.Record{ID: created.Name, Data: doc}, nil
}

// Patch implements remote.Store. The REST surface upserts, so a patch on a
// deleted record recreates it with only the patched fields.
func (s *Store) Patch(ctx context.Context, collection, id string, partial map[string]any) error {
	_, err := s.http.Do(ctx, http.MethodPatch, path(collection, id), partial)
	return err
}

// Delete implements remote.Store; deleting a missing record succeeds
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.http.Do(ctx, http.MethodDelete, path(collection, id), nil)
	return err
}
