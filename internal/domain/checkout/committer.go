// internal/domain/checkout/committer.go
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/your-org/ecart-storefront/internal/domain/cart"
	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

// StateObserver is told about every state change
type StateObserver func(from, to State)

// Committer creates an order from the cart and then drains the cart.
// The drain is a saga without compensation: the order is never rolled back
// and line items whose delete fails stay in the cart.
type Committer struct {
	orders  *remote.Collection
	carts   *cart.Repository
	engine  *pricing.Engine
	methods []PaymentMethod
	bus     *events.Bus
	logger  logrus.FieldLogger
	now     func() time.Time

	mu        sync.Mutex
	state     State
	observers []StateObserver
}

// NewCommitter creates a committer writing orders to the named collection
func NewCommitter(store remote.Store, collection string, carts *cart.Repository, engine *pricing.Engine, methods []PaymentMethod, bus *events.Bus, logger logrus.FieldLogger) *Committer {
	if collection == "" {
		collection = DefaultCollection
	}
	if len(methods) == 0 {
		methods = DefaultPaymentMethods()
	}
	return &Committer{
		orders:  remote.NewCollection(store, collection),
		carts:   carts,
		engine:  engine,
		methods: methods,
		bus:     bus,
		logger:  logger.WithFields(logrus.Fields{"component": "checkout", "collection": collection}),
		now:     func() time.Time { return time.Now().UTC() },
		state:   StateIdle,
	}
}

// PaymentMethods returns the accepted payment methods
func (c *Committer) PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(c.methods))
	copy(out, c.methods)
	return out
}

// State returns the current commit state
func (c *Committer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnStateChange registers an observer for state transitions
func (c *Committer) OnStateChange(fn StateObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Preview prices the user's cart for the checkout view
func (c *Committer) Preview(ctx context.Context, username string) (*Preview, error) {
	items, err := c.carts.ListForUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Preview{
		Items:          items,
		Totals:         c.engine.CheckoutTotals(cart.Lines(items)),
		PaymentMethods: c.PaymentMethods(),
	}, nil
}

func (c *Committer) validateMethod(code string) error {
	if code == "" {
		return apperr.Validation("Please select a payment method")
	}
	for _, m := range c.methods {
		if m.Code == code {
			return nil
		}
	}
	return apperr.Validation(fmt.Sprintf("unsupported payment method %q", code))
}

// Commit snapshots the user's cart into an order paid by method, then
// deletes every snapshotted line item in parallel. Success is reported once
// the order exists; delete failures are logged and returned in Result.Stale.
func (c *Committer) Commit(ctx context.Context, username, method string) (*Result, error) {
	if err := c.validateMethod(method); err != nil {
		return nil, err
	}
	if err := c.begin(); err != nil {
		return nil, err
	}

	log := c.logger.WithFields(logrus.Fields{"username": username, "payment_method": method})

	items, err := c.carts.ListForUser(ctx, username)
	if err != nil {
		c.transition(StateIdle)
		return nil, err
	}
	if len(items) == 0 {
		c.transition(StateIdle)
		return nil, apperr.Validation("Your cart is empty")
	}

	totals := c.engine.CheckoutTotals(cart.Lines(items))
	order := Order{
		Username:       username,
		Items:          items,
		PaymentMethod:  method,
		Subtotal:       totals.Subtotal,
		Discount:       totals.Discount,
		CouponDiscount: totals.CouponDiscount,
		PlatformFee:    totals.PlatformFee,
		Total:          totals.Total,
		CreatedAt:      c.now(),
	}

	rec, err := c.orders.Create(ctx, order)
	if err != nil {
		log.WithError(err).Error("Failed to create order")
		c.transition(StateIdle)
		return nil, err
	}
	order.ID = rec.ID
	log = log.WithField("order_id", rec.ID)
	log.WithField("total", order.Total).Info("Order created")

	c.transition(StateCartDrainInFlight)
	stale := c.drain(context.WithoutCancel(ctx), items, log)
	c.transition(StateDone)

	if c.bus != nil {
		c.bus.PublishCartOrWishlistChanged(ctx)
	}

	return &Result{
		Order:   order,
		OrderID: rec.ID,
		Drained: len(items) - len(stale),
		Stale:   stale,
	}, nil
}

// drain deletes every line item independently and returns the ids that
// could not be deleted
func (c *Committer) drain(ctx context.Context, items []cart.LineItem, log logrus.FieldLogger) []string {
	var (
		mu    sync.Mutex
		stale []string
		g     errgroup.Group
	)
	for _, item := range items {
		g.Go(func() error {
			if err := c.carts.Discard(ctx, item.ID); err != nil {
				log.WithError(err).WithField("record_id", item.ID).Warn("Line item left in cart after checkout")
				mu.Lock()
				stale = append(stale, item.ID)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return stale
}

func (c *Committer) begin() error {
	c.mu.Lock()
	if c.state == StateOrderSubmitted || c.state == StateCartDrainInFlight {
		c.mu.Unlock()
		return apperr.Validation("A checkout is already in progress")
	}
	from := c.state
	c.state = StateOrderSubmitted
	observers := append([]StateObserver{}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(from, StateOrderSubmitted)
	}
	return nil
}

func (c *Committer) transition(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	observers := append([]StateObserver{}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(from, to)
	}
}

// ListForUser returns the user's orders in store order
func (c *Committer) ListForUser(ctx context.Context, username string) ([]Order, error) {
	all, err := remote.DecodeAll(ctx, c.orders,
		remote.JSONDecoder(func(o *Order, id string) { o.ID = id }),
		func(rec remote.Record, err error) {
			c.logger.WithError(err).WithField("record_id", rec.ID).Warn("Skipping malformed order")
		})
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0)
	for _, o := range all {
		if o.Username == username {
			orders = append(orders, o)
		}
	}
	return orders, nil
}
