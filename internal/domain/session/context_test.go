package session

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

func newTestContext(t *testing.T, store Store, bus *events.Bus) *Context {
	t.Helper()
	logger, _ := test.NewNullLogger()
	c, err := NewContext(context.Background(), "sess-1", store, bus, logger)
	require.NoError(t, err)
	return c
}

func TestContextStartsLoggedOut(t *testing.T) {
	c := newTestContext(t, NewMemoryStore(), nil)

	_, ok := c.CurrentUsername()
	assert.False(t, ok)

	_, err := c.RequireUser()
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestLoginLogoutLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	bus := events.NewBus()
	c := newTestContext(t, store, bus)

	var transitions []Transition
	c.OnTransition(func(_ context.Context, tr Transition) { transitions = append(transitions, tr) })
	published := 0
	bus.OnCartOrWishlistChanged(func(context.Context) { published++ })

	require.NoError(t, c.Login(ctx, "asha", "https://img.example/a.png"))
	username, err := c.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, "asha", username)

	persisted, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, State{LoggedIn: true, Username: "asha", Avatar: "https://img.example/a.png"}, persisted)

	restored := newTestContext(t, store, nil)
	assert.True(t, restored.LoggedIn())

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.LoggedIn())
	_, err = store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoSession)

	assert.Equal(t, []Transition{
		{Kind: TransitionLogin, Username: "asha"},
		{Kind: TransitionLogout, Username: "asha"},
	}, transitions)
	assert.Equal(t, 2, published)
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Load(context.Context, string) (State, error) {
	return State{}, errors.New("redis down")
}

func TestNewContextSurfacesStoreFailure(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewContext(context.Background(), "x", &failingStore{}, nil, logger)
	assert.Error(t, err)
}

func TestUnsubscribeTransition(t *testing.T) {
	c := newTestContext(t, NewMemoryStore(), nil)
	calls := 0
	unsubscribe := c.OnTransition(func(context.Context, Transition) { calls++ })
	unsubscribe()

	require.NoError(t, c.Login(context.Background(), "asha", ""))
	assert.Equal(t, 0, calls)
}

func TestRequireUserToNamesAction(t *testing.T) {
	c := newTestContext(t, NewMemoryStore(), nil)

	_, err := c.RequireUserTo("add to cart")
	require.Error(t, err)
	assert.Equal(t, "Please log in to add to cart.", err.Error())
}
