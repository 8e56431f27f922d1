// internal/domain/storefront/surfaces.go
package storefront

import (
	"context"

	"github.com/your-org/ecart-storefront/internal/domain/cart"
	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/checkout"
	"github.com/your-org/ecart-storefront/internal/domain/counts"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
	"github.com/your-org/ecart-storefront/internal/domain/wishlist"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

// Shopper-facing messages
const (
	MsgAddedToCart         = "Added to cart"
	MsgAlreadyInCart       = "Item already in cart."
	MsgRemovedFromCart     = "Item removed from cart."
	MsgQuantityUpdated     = "Quantity updated"
	MsgAddedToWishlist     = "Added to wishlist"
	MsgRemovedFromWishlist = "Removed from wishlist"
	MsgMovedToCart         = "Item moved to cart."
	MsgOrderPlaced         = "Order placed successfully!"
	MsgWishlistNotFound    = "Wishlist item not found"
)

// CartView is the cart page model
type CartView struct {
	Items  []cart.LineItem   `json:"items"`
	Totals pricing.Breakdown `json:"totals"`
}

// ListedProduct is a catalogue product decorated for the current user
type ListedProduct struct {
	ID string `json:"id"`
	catalog.Product
	InWishlist bool `json:"inWishlist"`
}

// ViewCart returns the current user's cart with cart-view totals
func (s *Shopper) ViewCart(ctx context.Context) (*CartView, error) {
	username, err := s.Session.RequireUserTo("view your cart")
	if err != nil {
		return nil, err
	}
	items, err := s.Cart.ListForUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return &CartView{Items: items, Totals: s.engine.CartTotals(cart.Lines(items))}, nil
}

// AddToCart adds p to the current user's cart; an existing line item is
// reported as a duplicate conflict
func (s *Shopper) AddToCart(ctx context.Context, p catalog.Product) (cart.LineItem, error) {
	username, err := s.Session.RequireUserTo("add to cart")
	if err != nil {
		return cart.LineItem{}, err
	}
	item, added, err := s.Cart.AddIfAbsent(ctx, username, p)
	if err != nil {
		return cart.LineItem{}, err
	}
	if !added {
		return item, apperr.Duplicate(MsgAlreadyInCart)
	}
	return item, nil
}

// SetQuantity stores max(1, quantity) on a line item
func (s *Shopper) SetQuantity(ctx context.Context, id string, quantity int) (int, error) {
	if _, err := s.Session.RequireUserTo("update your cart"); err != nil {
		return 0, err
	}
	return s.Cart.SetQuantity(ctx, id, quantity)
}

// StepQuantity moves a line item's quantity up or down by one
func (s *Shopper) StepQuantity(ctx context.Context, id string, up bool) (int, error) {
	if _, err := s.Session.RequireUserTo("update your cart"); err != nil {
		return 0, err
	}
	item, err := s.Cart.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if up {
		return s.Cart.Increment(ctx, item)
	}
	return s.Cart.Decrement(ctx, item)
}

// RemoveFromCart deletes a line item
func (s *Shopper) RemoveFromCart(ctx context.Context, id string) error {
	if _, err := s.Session.RequireUserTo("update your cart"); err != nil {
		return err
	}
	return s.Cart.Remove(ctx, id)
}

// ViewWishlist returns the current user's wishlist
func (s *Shopper) ViewWishlist(ctx context.Context) ([]wishlist.Entry, error) {
	username, err := s.Session.RequireUserTo("view your wishlist")
	if err != nil {
		return nil, err
	}
	return s.Wishlist.ListForUser(ctx, username)
}

// ToggleWishlist saves or unsaves p for the current user
func (s *Shopper) ToggleWishlist(ctx context.Context, p catalog.Product) (wishlist.ToggleResult, error) {
	username, err := s.Session.RequireUserTo("use wishlist")
	if err != nil {
		return wishlist.ToggleResult{}, err
	}
	return s.Wishlist.Toggle(ctx, username, p)
}

// RemoveFromWishlist deletes a wishlist entry
func (s *Shopper) RemoveFromWishlist(ctx context.Context, id string) error {
	if _, err := s.Session.RequireUserTo("use wishlist"); err != nil {
		return err
	}
	return s.Wishlist.Remove(ctx, id)
}

// MoveToCart moves one of the current user's wishlist entries into the cart
func (s *Shopper) MoveToCart(ctx context.Context, entryID string) (wishlist.MoveResult, error) {
	username, err := s.Session.RequireUserTo("add to cart")
	if err != nil {
		return wishlist.MoveResult{}, err
	}
	entry, err := s.Wishlist.Get(ctx, entryID)
	if err != nil {
		return wishlist.MoveResult{}, err
	}
	if entry.Username != username {
		return wishlist.MoveResult{}, apperr.Validation(MsgWishlistNotFound)
	}
	return s.Wishlist.MoveToCart(ctx, entry)
}

// decorate marks the products the current user has saved. Anonymous
// shoppers get undecorated listings, and a failed wishlist fetch is logged
// rather than failing the listing.
func (s *Shopper) decorate(ctx context.Context, products []catalog.Product) []ListedProduct {
	listed := make([]ListedProduct, len(products))
	for i, p := range products {
		listed[i] = ListedProduct{ID: p.ID, Product: p}
	}

	username, ok := s.Session.CurrentUsername()
	if !ok {
		return listed
	}
	saved, err := s.Wishlist.Keys(ctx, username)
	if err != nil {
		s.logger.WithError(err).Warn("Listing shown without wishlist marks")
		return listed
	}
	for i := range listed {
		_, listed[i].InWishlist = saved[listed[i].Key()]
	}
	return listed
}

// ListCategory returns a category listing
func (s *Shopper) ListCategory(ctx context.Context, slug string) ([]ListedProduct, error) {
	products, err := s.catalog.ListCategory(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, products), nil
}

// Search returns matching products across every category
func (s *Shopper) Search(ctx context.Context, query, category string) ([]ListedProduct, error) {
	products, err := s.catalog.Search(ctx, query, category)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, products), nil
}

// Featured returns the home page picks
func (s *Shopper) Featured(ctx context.Context) ([]catalog.Featured, error) {
	return s.catalog.Featured(ctx)
}

// CheckoutPreview prices the current user's cart for checkout
func (s *Shopper) CheckoutPreview(ctx context.Context) (*checkout.Preview, error) {
	username, err := s.Session.RequireUserTo("checkout")
	if err != nil {
		return nil, err
	}
	return s.Checkout.Preview(ctx, username)
}

// PlaceOrder commits the current user's cart
func (s *Shopper) PlaceOrder(ctx context.Context, paymentMethod string) (*checkout.Result, error) {
	username, err := s.Session.RequireUserTo("checkout")
	if err != nil {
		return nil, err
	}
	return s.Checkout.Commit(ctx, username, paymentMethod)
}

// Orders lists the current user's orders
func (s *Shopper) Orders(ctx context.Context) ([]checkout.Order, error) {
	username, err := s.Session.RequireUserTo("view your orders")
	if err != nil {
		return nil, err
	}
	return s.Checkout.ListForUser(ctx, username)
}

// BadgeCounts returns the navigation counts, refreshing them when asked
func (s *Shopper) BadgeCounts(ctx context.Context, refresh bool) (counts.Counts, error) {
	if !refresh {
		return s.Counts.Counts(), nil
	}
	return s.Counts.Recompute(ctx)
}
