// Package memory is an in-process remote.Store. It keeps insertion order,
// records every call and lets tests inject failures or pause between a
// collection snapshot and the caller's next step.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// Op names a store operation
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpPatch  Op = "patch"
	OpDelete Op = "delete"
)

// Call describes one store invocation
type Call struct {
	Op         Op
	Collection string
	ID         string
}

type collection struct {
	order []string
	docs  map[string]json.RawMessage
}

// Store is a mutex-guarded in-memory document store
type Store struct {
	// Fail, when set, is consulted before every call; a non-nil result is
	// returned in place of performing the call.
	Fail func(Call) error
	// OnListed, when set, runs after List has taken its snapshot and before
	// it returns.
	OnListed func(Call)

	mu          sync.Mutex
	collections map[string]*collection
	calls       []Call
}

// New creates an empty store
func New() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// Calls returns a copy of the call log
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CountCalls returns how many calls matched op on collection
func (s *Store) CountCalls(op Op, coll string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Op == op && c.Collection == coll {
			n++
		}
	}
	return n
}

// Put stores doc under an explicit id, overwriting any previous document
func (s *Store) Put(coll, id string, doc any) error {
	data, err := remote.Marshal(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(coll)
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = data
	return nil
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]json.RawMessage)}
		s.collections[name] = c
	}
	return c
}

func (s *Store) begin(call Call) error {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail(call)
	}
	return nil
}

// List implements remote.Store
func (s *Store) List(ctx context.Context, coll string) ([]remote.Record, error) {
	call := Call{Op: OpList, Collection: coll}
	if err := s.begin(call); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	c := s.coll(coll)
	records := make([]remote.Record, 0, len(c.order))
	for _, id := range c.order {
		records = append(records, remote.Record{ID: id, Data: c.docs[id]})
	}
	s.mu.Unlock()

	if s.OnListed != nil {
		s.OnListed(call)
	}
	return records, nil
}

// Get implements remote.Store
func (s *Store) Get(ctx context.Context, coll, id string) (remote.Record, error) {
	if err := s.begin(Call{Op: OpGet, Collection: coll, ID: id}); err != nil {
		return remote.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(coll).docs[id]
	if !ok {
		return remote.Record{}, fmt.Errorf("%s/%s: %w", coll, id, remote.ErrNotFound)
	}
	return remote.Record{ID: id, Data: doc}, nil
}

// Create implements remote.Store
func (s *Store) Create(ctx context.Context, coll string, payload any) (remote.Record, error) {
	if err := s.begin(Call{Op: OpCreate, Collection: coll}); err != nil {
		return remote.Record{}, err
	}
	data, err := remote.Marshal(payload)
	if err != nil {
		return remote.Record{}, err
	}

	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(coll)
	c.order = append(c.order, id)
	c.docs[id] = data
	return remote.Record{ID: id, Data: data}, nil
}

// Patch implements remote.Store
func (s *Store) Patch(ctx context.Context, coll, id string, partial map[string]any) error {
	if err := s.begin(Call{Op: OpPatch, Collection: coll, ID: id}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(coll)
	doc, ok := c.docs[id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", coll, id, remote.ErrNotFound)
	}
	merged, err := remote.MergePatch(doc, partial)
	if err != nil {
		return err
	}
	c.docs[id] = merged
	return nil
}

// Delete implements remote.Store
func (s *Store) Delete(ctx context.Context, coll, id string) error {
	if err := s.begin(Call{Op: OpDelete, Collection: coll, ID: id}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(coll)
	if _, ok := c.docs[id]; !ok {
		return fmt.Errorf("%s/%s: %w", coll, id, remote.ErrNotFound)
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
