// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/ecart-storefront/internal/domain/storefront"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

const msgOrderFailed = "Failed to place order. Please try again."

// CheckoutHandler handles checkout and order history endpoints
type CheckoutHandler struct{}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

// GetCheckout handles GET /checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	preview, err := s.CheckoutPreview(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout retrieved successfully",
		"data": CheckoutResponse{
			Items:          toLineItems(preview.Items),
			Totals:         preview.Totals,
			PaymentMethods: preview.PaymentMethods,
		},
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := s.PlaceOrder(c.Request.Context(), req.PaymentMethod)
	if err != nil {
		respondError(c, err, msgOrderFailed)
		return
	}

	respondNotification(c, http.StatusCreated, apperr.Success(storefront.MsgOrderPlaced), gin.H{
		"order":   OrderResponse{ID: result.OrderID, Order: result.Order},
		"drained": result.Drained,
		"stale":   result.Stale,
	})
}

// GetOrders handles GET /orders
func (h *CheckoutHandler) GetOrders(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	orders, err := s.Orders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    toOrders(orders),
	})
}
