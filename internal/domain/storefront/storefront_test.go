package storefront

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/ecart-storefront/internal/config"
	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/counts"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
	"github.com/your-org/ecart-storefront/internal/domain/session"
	"github.com/your-org/ecart-storefront/internal/domain/user"
	"github.com/your-org/ecart-storefront/internal/domain/wishlist"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/memory"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
	"github.com/your-org/ecart-storefront/internal/pkg/auth"
)

func newDeps(t *testing.T) (Dependencies, *memory.Store) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := memory.New()
	require.NoError(t, store.Put("tvData", "1", catalog.Product{Company: "Sony", Model: "Bravia", Price: 5000, Product: "tv"}))
	require.NoError(t, store.Put("tvData", "2", catalog.Product{Brand: "LG", Model: "C3", Price: 2500, Product: "tv"}))

	passwords := auth.NewPasswordManager(&config.Config{Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost}})
	return Dependencies{
		Store:    store,
		Sessions: session.NewMemoryStore(),
		Catalog:  catalog.NewService(store, nil, logger),
		Users:    user.NewService(store, "", passwords, logger),
		Engine:   pricing.NewEngine(pricing.DefaultRules()),
		Logger:   logger,
	}, store
}

func signup(t *testing.T, s *Shopper) {
	t.Helper()
	_, err := s.Signup(context.Background(), user.SignupRequest{
		FirstName: "Asha", LastName: "Nair", Mobile: "9876543210",
		Email: "asha@example.com", Username: "asha", Password: "secret1",
	})
	require.NoError(t, err)
}

func TestAnonymousShopperIsAskedToLogIn(t *testing.T) {
	deps, store := newDeps(t)
	s, err := NewShopper(context.Background(), deps, "anon")
	require.NoError(t, err)
	defer s.Close()
	before := len(store.Calls())

	_, err = s.AddToCart(context.Background(), catalog.Product{Company: "Sony", Model: "Bravia"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrAuth)
	assert.Equal(t, "Please log in to add to cart.", err.Error())

	_, err = s.ToggleWishlist(context.Background(), catalog.Product{Company: "Sony", Model: "Bravia"})
	assert.Equal(t, "Please log in to use wishlist.", err.Error())

	_, err = s.PlaceOrder(context.Background(), "cod")
	assert.ErrorIs(t, err, apperr.ErrAuth)
	assert.Len(t, store.Calls(), before)

	listing, err := s.ListCategory(context.Background(), "tvs")
	require.NoError(t, err)
	require.Len(t, listing, 2)
	assert.Equal(t, "1", listing[0].ID)
	assert.False(t, listing[0].InWishlist)
}

func TestShopperJourney(t *testing.T) {
	deps, _ := newDeps(t)
	ctx := context.Background()
	s, err := NewShopper(ctx, deps, "sess-1")
	require.NoError(t, err)
	defer s.Close()

	signup(t, s)
	assert.True(t, s.Session.LoggedIn())

	listing, err := s.ListCategory(ctx, "tvs")
	require.NoError(t, err)
	bravia, lg := listing[0].Product, listing[1].Product

	res, err := s.ToggleWishlist(ctx, lg)
	require.NoError(t, err)
	assert.Equal(t, wishlist.Added, res.Outcome)

	listing, err = s.ListCategory(ctx, "tvs")
	require.NoError(t, err)
	assert.False(t, listing[0].InWishlist)
	assert.True(t, listing[1].InWishlist)

	_, err = s.AddToCart(ctx, bravia)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, bravia)
	assert.ErrorIs(t, err, apperr.ErrDuplicate)
	assert.Equal(t, apperr.Info(MsgAlreadyInCart), apperr.NotificationFor(err, "x"))

	assert.Equal(t, counts.Counts{Cart: 1, Wishlist: 1}, s.Counts.Counts())

	moved, err := s.MoveToCart(ctx, res.Entry.ID)
	require.NoError(t, err)
	assert.True(t, moved.AddedToCart)
	assert.Equal(t, counts.Counts{Cart: 2, Wishlist: 0}, s.Counts.Counts())

	view, err := s.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, int64(7500), view.Totals.Subtotal)

	q, err := s.StepQuantity(ctx, view.Items[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, q)
	q, err = s.SetQuantity(ctx, view.Items[0].ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, q)

	result, err := s.PlaceOrder(ctx, "cod")
	require.NoError(t, err)
	assert.Equal(t, int64(7500-300-117+4), result.Order.Total)
	assert.Equal(t, counts.Counts{}, s.Counts.Counts())

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	require.NoError(t, s.Logout(ctx))
	_, err = s.ViewCart(ctx)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestMoveToCartRejectsForeignEntry(t *testing.T) {
	deps, store := newDeps(t)
	ctx := context.Background()
	require.NoError(t, store.Put(wishlist.DefaultCollection, "w1", wishlist.Entry{Username: "ravi", Company: "Sony", Model: "Bravia"}))

	s, err := NewShopper(ctx, deps, "sess-1")
	require.NoError(t, err)
	defer s.Close()
	signup(t, s)

	_, err = s.MoveToCart(ctx, "w1")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProfileLifecycle(t *testing.T) {
	deps, _ := newDeps(t)
	ctx := context.Background()
	s, err := NewShopper(ctx, deps, "sess-1")
	require.NoError(t, err)
	defer s.Close()
	signup(t, s)

	p, err := s.UpdateProfile(ctx, user.UpdateProfileRequest{Username: "asha.n"})
	require.NoError(t, err)
	assert.Equal(t, "asha.n", p.Username)
	username, _ := s.Session.CurrentUsername()
	assert.Equal(t, "asha.n", username)

	require.NoError(t, s.Logout(ctx))
	_, err = s.Login(ctx, "asha@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx))
	assert.False(t, s.Session.LoggedIn())
	_, err = s.Login(ctx, "asha.n", "secret1")
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestSessionSurvivesShopperRebuild(t *testing.T) {
	deps, _ := newDeps(t)
	ctx := context.Background()
	first, err := NewShopper(ctx, deps, "sess-1")
	require.NoError(t, err)
	signup(t, first)
	_, err = first.AddToCart(ctx, catalog.Product{Company: "Sony", Model: "Bravia", Price: 5000})
	require.NoError(t, err)
	first.Close()

	second, err := NewShopper(ctx, deps, "sess-1")
	require.NoError(t, err)
	defer second.Close()
	assert.True(t, second.Session.LoggedIn())
	assert.Equal(t, 1, second.Counts.Counts().Cart)
}

func TestRegistryEvictionClosesShopper(t *testing.T) {
	deps, _ := newDeps(t)
	ctx := context.Background()
	built := 0
	reg, err := NewRegistry(1, func(ctx context.Context, id string) (*Shopper, error) {
		built++
		return NewShopper(ctx, deps, id)
	})
	require.NoError(t, err)
	defer reg.Close()

	a, err := reg.Get(ctx, "a")
	require.NoError(t, err)
	again, err := reg.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, a, again)

	_, err = reg.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 2, built)
	assert.Zero(t, a.Bus.Subscribers(), "evicted shopper should drop its subscriptions")
}
