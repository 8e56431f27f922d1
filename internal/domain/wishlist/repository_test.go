package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/ecart-storefront/internal/domain/cart"
	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/memory"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

var watch = catalog.Product{Company: "Titan", Model: "Edge", Price: 9995, Product: "watch"}

type fixture struct {
	store *memory.Store
	carts *cart.Repository
	repo  *Repository
	hook  *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	store := memory.New()
	bus := events.NewBus()
	carts := cart.NewRepository(store, "", bus, logger)
	return &fixture{
		store: store,
		carts: carts,
		repo:  NewRepository(store, "", carts, bus, logger),
		hook:  hook,
	}
}

func TestToggleAddsThenRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.repo.Toggle(ctx, "asha", watch)
	require.NoError(t, err)
	assert.Equal(t, Added, res.Outcome)
	assert.NotEmpty(t, res.Entry.ID)

	ok, err := f.repo.Contains(ctx, "asha", watch.Key())
	require.NoError(t, err)
	assert.True(t, ok)

	res, err = f.repo.Toggle(ctx, "asha", watch)
	require.NoError(t, err)
	assert.Equal(t, Removed, res.Outcome)

	count, err := f.repo.Count(ctx, "asha")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestToggleIgnoresOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repo.Toggle(ctx, "ravi", watch)
	require.NoError(t, err)

	res, err := f.repo.Toggle(ctx, "asha", watch)
	require.NoError(t, err)
	assert.Equal(t, Added, res.Outcome)

	count, err := f.repo.Count(ctx, "ravi")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMoveToCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.repo.Toggle(ctx, "asha", watch)
	require.NoError(t, err)

	moved, err := f.repo.MoveToCart(ctx, res.Entry)
	require.NoError(t, err)
	assert.True(t, moved.AddedToCart)

	entries, err := f.repo.ListForUser(ctx, "asha")
	require.NoError(t, err)
	assert.Empty(t, entries)

	items, err := f.carts.ListForUser(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, watch.Key(), items[0].Key())
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, moved.CartItemID, items[0].ID)
}

func TestMoveToCartWhenAlreadyInCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.carts.AddIfAbsent(ctx, "asha", watch)
	require.NoError(t, err)
	res, err := f.repo.Toggle(ctx, "asha", watch)
	require.NoError(t, err)

	moved, err := f.repo.MoveToCart(ctx, res.Entry)
	require.NoError(t, err)
	assert.False(t, moved.AddedToCart)

	items, err := f.carts.ListForUser(ctx, "asha")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	count, err := f.repo.Count(ctx, "asha")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMoveToCartDeleteFailureLeavesBoth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.repo.Toggle(ctx, "asha", watch)
	require.NoError(t, err)

	f.store.Fail = func(c memory.Call) error {
		if c.Op == memory.OpDelete && c.Collection == DefaultCollection {
			return errors.New("HTTP 500")
		}
		return nil
	}

	_, err = f.repo.MoveToCart(ctx, res.Entry)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrTransport)
	f.store.Fail = nil

	items, err := f.carts.ListForUser(ctx, "asha")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	entries, err := f.repo.ListForUser(ctx, "asha")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	last := f.hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, res.Entry.ID, last.Data["record_id"])
}

func TestMoveToCartCartFailureKeepsEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.repo.Toggle(ctx, "asha", watch)
	require.NoError(t, err)

	f.store.Fail = func(c memory.Call) error {
		if c.Op == memory.OpCreate {
			return errors.New("HTTP 500")
		}
		return nil
	}

	_, err = f.repo.MoveToCart(ctx, res.Entry)
	require.Error(t, err)
	assert.Zero(t, f.store.CountCalls(memory.OpDelete, DefaultCollection))
}
