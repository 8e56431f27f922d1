// internal/domain/session/context.go
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

// TransitionKind tells login from logout
type TransitionKind string

const (
	TransitionLogin  TransitionKind = "login"
	TransitionLogout TransitionKind = "logout"
)

// Transition describes one session change
type Transition struct {
	Kind     TransitionKind
	Username string
}

// TransitionHandler observes session transitions
type TransitionHandler func(ctx context.Context, t Transition)

// Context is the explicit session object for one browser session.
// It is built once per session and injected into every repository and
// surface that needs the current user.
type Context struct {
	id     string
	store  Store
	bus    *events.Bus
	logger logrus.FieldLogger

	mu       sync.RWMutex
	state    State
	nextID   int
	handlers map[int]TransitionHandler
}

// NewContext restores the session stored under id, starting logged out when
// none exists
func NewContext(ctx context.Context, id string, store Store, bus *events.Bus, logger logrus.FieldLogger) (*Context, error) {
	state, err := store.Load(ctx, id)
	if err != nil && !errors.Is(err, ErrNoSession) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !state.LoggedIn {
		state = State{}
	}

	return &Context{
		id:       id,
		store:    store,
		bus:      bus,
		logger:   logger.WithField("component", "session"),
		state:    state,
		handlers: make(map[int]TransitionHandler),
	}, nil
}

// ID returns the session id
func (c *Context) ID() string {
	return c.id
}

// State returns a copy of the session state
func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// CurrentUsername returns the logged-in username, or false when absent
func (c *Context) CurrentUsername() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.state.LoggedIn || c.state.Username == "" {
		return "", false
	}
	return c.state.Username, true
}

// LoggedIn reports whether a user is logged in
func (c *Context) LoggedIn() bool {
	_, ok := c.CurrentUsername()
	return ok
}

// RequireUser returns the current username or an auth-required error
func (c *Context) RequireUser() (string, error) {
	return c.RequireUserTo("continue")
}

// RequireUserTo is RequireUser with the attempted action named in the error
func (c *Context) RequireUserTo(action string) (string, error) {
	username, ok := c.CurrentUsername()
	if !ok {
		return "", apperr.AuthRequired(fmt.Sprintf("Please log in to %s.", action))
	}
	return username, nil
}

// Login stores the session and announces the transition
func (c *Context) Login(ctx context.Context, username, avatar string) error {
	if username == "" {
		return apperr.Validation("username is required")
	}
	state := State{LoggedIn: true, Username: username, Avatar: avatar}
	if err := c.store.Save(ctx, c.id, state); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	c.logger.WithField("username", username).Info("Session logged in")
	c.announce(ctx, Transition{Kind: TransitionLogin, Username: username})
	return nil
}

// Logout clears every session key and announces the transition
func (c *Context) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx, c.id); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	c.mu.Lock()
	previous := c.state.Username
	c.state = State{}
	c.mu.Unlock()

	c.logger.WithField("username", previous).Info("Session logged out")
	c.announce(ctx, Transition{Kind: TransitionLogout, Username: previous})
	return nil
}

// OnTransition subscribes h to login/logout and returns its unsubscribe func
func (c *Context) OnTransition(h TransitionHandler) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = h
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}

func (c *Context) announce(ctx context.Context, t Transition) {
	c.mu.RLock()
	ids := make([]int, 0, len(c.handlers))
	for id := range c.handlers {
		ids = append(ids, id)
	}
	c.mu.RUnlock()
	slices.Sort(ids)

	for _, id := range ids {
		c.mu.RLock()
		h, ok := c.handlers[id]
		c.mu.RUnlock()
		if ok {
			h(ctx, t)
		}
	}

	if c.bus != nil {
		c.bus.PublishCartOrWishlistChanged(ctx)
	}
}
