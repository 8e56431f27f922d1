// Package storefront assembles the per-session surfaces (session, change
// bus, repositories, badge counts, checkout) into one Shopper.
package storefront

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/domain/cart"
	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/checkout"
	"github.com/your-org/ecart-storefront/internal/domain/counts"
	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
	"github.com/your-org/ecart-storefront/internal/domain/session"
	"github.com/your-org/ecart-storefront/internal/domain/user"
	"github.com/your-org/ecart-storefront/internal/domain/wishlist"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// Collections names the shared collections
type Collections struct {
	Cart     string
	Wishlist string
	Orders   string
}

// Dependencies are shared by every shopper
type Dependencies struct {
	Store          remote.Store
	Sessions       session.Store
	Catalog        *catalog.Service
	Users          *user.Service
	Engine         *pricing.Engine
	PaymentMethods []checkout.PaymentMethod
	Collections    Collections
	Logger         logrus.FieldLogger
}

// Shopper is everything one browser session works with
type Shopper struct {
	Session  *session.Context
	Bus      *events.Bus
	Cart     *cart.Repository
	Wishlist *wishlist.Repository
	Counts   *counts.Cache
	Checkout *checkout.Committer

	catalog *catalog.Service
	users   *user.Service
	engine  *pricing.Engine
	logger  logrus.FieldLogger
}

// NewShopper restores the session sessionID and wires its surfaces
func NewShopper(ctx context.Context, deps Dependencies, sessionID string) (*Shopper, error) {
	logger := deps.Logger.WithField("session_id", sessionID)
	bus := events.NewBus()

	sess, err := session.NewContext(ctx, sessionID, deps.Sessions, bus, logger)
	if err != nil {
		return nil, err
	}

	carts := cart.NewRepository(deps.Store, deps.Collections.Cart, bus, logger)
	wishlists := wishlist.NewRepository(deps.Store, deps.Collections.Wishlist, carts, bus, logger)

	s := &Shopper{
		Session:  sess,
		Bus:      bus,
		Cart:     carts,
		Wishlist: wishlists,
		Counts:   counts.New(sess, bus, carts, wishlists, logger),
		Checkout: checkout.NewCommitter(deps.Store, deps.Collections.Orders, carts, deps.Engine, deps.PaymentMethods, bus, logger),
		catalog:  deps.Catalog,
		users:    deps.Users,
		engine:   deps.Engine,
		logger:   logger.WithField("component", "storefront"),
	}

	if sess.LoggedIn() {
		if _, err := s.Counts.Recompute(ctx); err != nil {
			s.logger.WithError(err).Warn("Initial count refresh failed")
		}
	}
	return s, nil
}

// Close releases the shopper's subscriptions
func (s *Shopper) Close() {
	s.Counts.Close()
}

