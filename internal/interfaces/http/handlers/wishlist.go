// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/storefront"
	"github.com/your-org/ecart-storefront/internal/domain/wishlist"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

const msgWishlistFailed = "Could not update your wishlist. Please try again."

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	catalog *catalog.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(catalogService *catalog.Service) *WishlistHandler {
	return &WishlistHandler{catalog: catalogService}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	entries, err := s.ViewWishlist(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    toEntries(entries),
	})
}

// ToggleWishlist handles POST /wishlist/toggle
func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	var req ProductRef
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if _, err := s.Session.RequireUserTo("use wishlist"); err != nil {
		respondError(c, err, msgWishlistFailed)
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), req.Category, req.ProductID)
	if err != nil {
		respondError(c, err, msgWishlistFailed)
		return
	}

	result, err := s.ToggleWishlist(c.Request.Context(), product)
	if err != nil {
		respondError(c, err, msgWishlistFailed)
		return
	}

	n := apperr.Success(storefront.MsgAddedToWishlist)
	if result.Outcome == wishlist.Removed {
		n = apperr.Info(storefront.MsgRemovedFromWishlist)
	}
	respondNotification(c, http.StatusOK, n, gin.H{
		"outcome": result.Outcome,
		"entry":   EntryResponse{ID: result.Entry.ID, Entry: result.Entry},
	})
}

// RemoveFromWishlist handles DELETE /wishlist/:id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	if err := s.RemoveFromWishlist(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, msgWishlistFailed)
		return
	}

	respondNotification(c, http.StatusOK, apperr.Info(storefront.MsgRemovedFromWishlist), nil)
}

// MoveToCart handles POST /wishlist/:id/move-to-cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	result, err := s.MoveToCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Could not move item to cart. Please try again.")
		return
	}

	n := apperr.Success(storefront.MsgMovedToCart)
	if !result.AddedToCart {
		n = apperr.Info(storefront.MsgAlreadyInCart)
	}
	respondNotification(c, http.StatusOK, n, result)
}
