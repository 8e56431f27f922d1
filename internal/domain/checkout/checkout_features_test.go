package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/your-org/ecart-storefront/internal/domain/cart"
	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/checkout"
	"github.com/your-org/ecart-storefront/internal/domain/events"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/memory"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

type checkoutTestContext struct {
	store     *memory.Store
	carts     *cart.Repository
	committer *checkout.Committer
	engine    *pricing.Engine
	username  string
	lastItem  cart.LineItem
	stored    int
	result    *checkout.Result
	err       error
	products  int
}

func (c *checkoutTestContext) reset() {
	logger, _ := test.NewNullLogger()
	bus := events.NewBus()
	c.store = memory.New()
	c.engine = pricing.NewEngine(pricing.DefaultRules())
	c.carts = cart.NewRepository(c.store, "", bus, logger)
	c.committer = checkout.NewCommitter(c.store, "", c.carts, c.engine, nil, bus, logger)
	c.username = ""
	c.lastItem = cart.LineItem{}
	c.stored = 0
	c.result = nil
	c.err = nil
	c.products = 0
}

func (c *checkoutTestContext) theShopperIsLoggedIn(username string) error {
	c.username = username
	return nil
}

func (c *checkoutTestContext) theCartHoldsAProductPricedWithQuantity(price, quantity int) error {
	c.products++
	p := catalog.Product{Company: "Acme", Model: fmt.Sprintf("M-%d", c.products), Price: int64(price)}
	item, _, err := c.carts.AddIfAbsent(context.Background(), c.username, p)
	if err != nil {
		return err
	}
	if quantity != 1 {
		if _, err := c.carts.SetQuantity(context.Background(), item.ID, quantity); err != nil {
			return err
		}
	}
	c.lastItem = item
	return nil
}

func (c *checkoutTestContext) deletingCartRecordsFails() error {
	c.store.Fail = func(call memory.Call) error {
		if call.Op == memory.OpDelete && call.Collection == cart.DefaultCollection {
			return errors.New("HTTP 503")
		}
		return nil
	}
	return nil
}

func (c *checkoutTestContext) cartTotals() (pricing.Breakdown, error) {
	items, err := c.carts.ListForUser(context.Background(), c.username)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	return c.engine.CartTotals(cart.Lines(items)), nil
}

func (c *checkoutTestContext) expectTotal(name string, pick func(pricing.Breakdown) int64) func(int) error {
	return func(want int) error {
		b, err := c.cartTotals()
		if err != nil {
			return err
		}
		if got := pick(b); got != int64(want) {
			return fmt.Errorf("expected cart %s %d, got %d", name, want, got)
		}
		return nil
	}
}

func (c *checkoutTestContext) theShopperChecksOutPayingWith(method string) error {
	c.result, c.err = c.committer.Commit(context.Background(), c.username, method)
	return nil
}

func (c *checkoutTestContext) anOrderIsCreatedWithTotal(total int) error {
	if c.err != nil {
		return fmt.Errorf("checkout failed: %w", c.err)
	}
	if c.result.Order.Total != int64(total) {
		return fmt.Errorf("expected order total %d, got %d", total, c.result.Order.Total)
	}
	orders, err := c.committer.ListForUser(context.Background(), c.username)
	if err != nil {
		return err
	}
	if len(orders) != 1 {
		return fmt.Errorf("expected 1 stored order, got %d", len(orders))
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsWithAValidationError() error {
	if !errors.Is(c.err, apperr.ErrValidation) {
		return fmt.Errorf("expected validation error, got %v", c.err)
	}
	return nil
}

func (c *checkoutTestContext) noOrderIsCreated() error {
	if n := c.store.CountCalls(memory.OpCreate, checkout.DefaultCollection); n != 0 {
		return fmt.Errorf("expected no order create calls, got %d", n)
	}
	return nil
}

func (c *checkoutTestContext) theCartHasLineItems(username string, n int) error {
	c.store.Fail = nil
	items, err := c.carts.ListForUser(context.Background(), username)
	if err != nil {
		return err
	}
	if len(items) != n {
		return fmt.Errorf("expected %d line items for %s, got %d", n, username, len(items))
	}
	return nil
}

func (c *checkoutTestContext) theCartIsEmpty(username string) error {
	return c.theCartHasLineItems(username, 0)
}

func (c *checkoutTestContext) theShopperSetsTheQuantityTo(q int) error {
	stored, err := c.carts.SetQuantity(context.Background(), c.lastItem.ID, q)
	c.stored = stored
	return err
}

func (c *checkoutTestContext) theStoredQuantityIs(want int) error {
	item, err := c.carts.Get(context.Background(), c.lastItem.ID)
	if err != nil {
		return err
	}
	if item.Quantity != want || c.stored != want {
		return fmt.Errorf("expected quantity %d, stored %d returned %d", want, item.Quantity, c.stored)
	}
	return nil
}

func (c *checkoutTestContext) theShopperAddsTheProductTimes(company, model string, times int) error {
	p := catalog.Product{Company: company, Model: model, Price: 1}
	for i := 0; i < times; i++ {
		if _, _, err := c.carts.AddIfAbsent(context.Background(), c.username, p); err != nil {
			return err
		}
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the shopper "([^"]*)" is logged in$`, tc.theShopperIsLoggedIn)
	ctx.Step(`^the cart holds a product priced (\d+) with quantity (\d+)$`, tc.theCartHoldsAProductPricedWithQuantity)
	ctx.Step(`^deleting cart records fails$`, tc.deletingCartRecordsFails)

	// When steps
	ctx.Step(`^the shopper checks out paying with "([^"]*)"$`, tc.theShopperChecksOutPayingWith)
	ctx.Step(`^the shopper sets the quantity to (-?\d+)$`, tc.theShopperSetsTheQuantityTo)
	ctx.Step(`^the shopper adds the product "([^"]*)" "([^"]*)" (\d+) times$`, tc.theShopperAddsTheProductTimes)

	// Then steps
	ctx.Step(`^the cart subtotal is (\d+)$`, tc.expectTotal("subtotal", func(b pricing.Breakdown) int64 { return b.Subtotal }))
	ctx.Step(`^the cart discount is (\d+)$`, tc.expectTotal("discount", func(b pricing.Breakdown) int64 { return b.Discount }))
	ctx.Step(`^the cart coupon discount is (\d+)$`, tc.expectTotal("coupon discount", func(b pricing.Breakdown) int64 { return b.CouponDiscount }))
	ctx.Step(`^the cart total is (\d+)$`, tc.expectTotal("total", func(b pricing.Breakdown) int64 { return b.Total }))
	ctx.Step(`^an order is created with total (\d+)$`, tc.anOrderIsCreatedWithTotal)
	ctx.Step(`^the checkout fails with a validation error$`, tc.theCheckoutFailsWithAValidationError)
	ctx.Step(`^no order is created$`, tc.noOrderIsCreated)
	ctx.Step(`^the cart of "([^"]*)" is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the cart of "([^"]*)" has (\d+) line items$`, tc.theCartHasLineItems)
	ctx.Step(`^the stored quantity is (\d+)$`, tc.theStoredQuantityIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
