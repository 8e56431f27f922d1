// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/storefront"
)

// CatalogHandler handles catalogue endpoints
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new catalogue handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService}
}

// GetCategories handles GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    h.catalog.Categories(),
	})
}

// GetCategoryProducts handles GET /categories/:slug/products
func (h *CatalogHandler) GetCategoryProducts(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	products, err := s.ListCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to load products. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /categories/:slug/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.Product(c.Request.Context(), c.Param("slug"), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load product. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    storefront.ListedProduct{ID: product.ID, Product: product},
	})
}

// Search handles GET /search?q=&category=
func (h *CatalogHandler) Search(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	products, err := s.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		respondError(c, err, "Search failed. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search completed",
		"data":    products,
	})
}

// GetFeatured handles GET /featured
func (h *CatalogHandler) GetFeatured(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	featured, err := s.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load featured products.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Featured products retrieved successfully",
		"data":    featured,
	})
}
