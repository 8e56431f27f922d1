// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/storefront"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

const msgCartFailed = "Could not update your cart. Please try again."

// CartHandler handles cart endpoints
type CartHandler struct {
	catalog *catalog.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalogService *catalog.Service) *CartHandler {
	return &CartHandler{catalog: catalogService}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	view, err := s.ViewCart(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data": CartResponse{
			Items:  toLineItems(view.Items),
			Totals: view.Totals,
		},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	var req ProductRef
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	// anonymous shoppers are refused before the catalogue is read
	if _, err := s.Session.RequireUserTo("add to cart"); err != nil {
		respondError(c, err, msgCartFailed)
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), req.Category, req.ProductID)
	if err != nil {
		respondError(c, err, msgCartFailed)
		return
	}

	item, err := s.AddToCart(c.Request.Context(), product)
	if errors.Is(err, apperr.ErrDuplicate) {
		respondNotification(c, http.StatusOK, apperr.NotificationFor(err, storefront.MsgAlreadyInCart),
			LineItemResponse{ID: item.ID, LineItem: item})
		return
	}
	if err != nil {
		respondError(c, err, msgCartFailed)
		return
	}

	respondNotification(c, http.StatusCreated,
		apperr.Success(storefront.MsgAddedToCart),
		LineItemResponse{ID: item.ID, LineItem: item})
}

// UpdateQuantity handles PUT /cart/items/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	quantity, err := s.SetQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		respondError(c, err, msgCartFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": storefront.MsgQuantityUpdated,
		"data":    gin.H{"id": c.Param("id"), "quantity": quantity},
	})
}

// IncrementQuantity handles POST /cart/items/:id/increment
func (h *CartHandler) IncrementQuantity(c *gin.Context) {
	h.step(c, true)
}

// DecrementQuantity handles POST /cart/items/:id/decrement
func (h *CartHandler) DecrementQuantity(c *gin.Context) {
	h.step(c, false)
}

func (h *CartHandler) step(c *gin.Context, up bool) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	quantity, err := s.StepQuantity(c.Request.Context(), c.Param("id"), up)
	if err != nil {
		respondError(c, err, msgCartFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": storefront.MsgQuantityUpdated,
		"data":    gin.H{"id": c.Param("id"), "quantity": quantity},
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	if err := s.RemoveFromCart(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, msgCartFailed)
		return
	}

	respondNotification(c, http.StatusOK,
		apperr.Success(storefront.MsgRemovedFromCart), nil)
}
