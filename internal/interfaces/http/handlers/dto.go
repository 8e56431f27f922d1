// internal/interfaces/http/handlers/dto.go
package handlers

import (
	"github.com/your-org/ecart-storefront/internal/domain/cart"
	"github.com/your-org/ecart-storefront/internal/domain/checkout"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
	"github.com/your-org/ecart-storefront/internal/domain/wishlist"
)

// LineItemResponse exposes a cart line item with its record id
type LineItemResponse struct {
	ID string `json:"id"`
	cart.LineItem
}

// EntryResponse exposes a wishlist entry with its record id
type EntryResponse struct {
	ID string `json:"id"`
	wishlist.Entry
}

// OrderResponse exposes an order with its record id
type OrderResponse struct {
	ID string `json:"id"`
	checkout.Order
}

// CartResponse is the cart page payload
type CartResponse struct {
	Items  []LineItemResponse `json:"items"`
	Totals pricing.Breakdown  `json:"totals"`
}

// CheckoutResponse is the checkout page payload
type CheckoutResponse struct {
	Items          []LineItemResponse       `json:"items"`
	Totals         pricing.Breakdown        `json:"totals"`
	PaymentMethods []checkout.PaymentMethod `json:"paymentMethods"`
}

// QuantityRequest sets a line item's quantity
type QuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// PlaceOrderRequest commits the cart
type PlaceOrderRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func toLineItems(items []cart.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, item := range items {
		out[i] = LineItemResponse{ID: item.ID, LineItem: item}
	}
	return out
}

func toEntries(entries []wishlist.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{ID: e.ID, Entry: e}
	}
	return out
}

func toOrders(orders []checkout.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = OrderResponse{ID: o.ID, Order: o}
	}
	return out
}

// ProductRef identifies a catalogue product by category slug and record id
type ProductRef struct {
	Category  string `json:"category" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
}
