// internal/infrastructure/database/redis/session_store.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/your-org/ecart-storefront/internal/domain/session"
)

// SessionStore persists session state as JSON with a sliding TTL
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

// NewSessionStore creates a session store; ttl <= 0 keeps sessions forever
func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(sessionID string) string {
	return s.client.Key("session", sessionID)
}

// Load implements session.Store
func (s *SessionStore) Load(ctx context.Context, sessionID string) (session.State, error) {
	var state session.State
	data, err := s.client.Redis.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return state, session.ErrNoSession
	}
	if err != nil {
		return state, fmt.Errorf("failed to load session: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("failed to decode session: %w", err)
	}
	if s.ttl > 0 {
		s.client.Redis.Expire(ctx, s.key(sessionID), s.ttl)
	}
	return state, nil
}

// Save implements session.Store
func (s *SessionStore) Save(ctx context.Context, sessionID string, state session.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Redis.Set(ctx, s.key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear implements session.Store
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
