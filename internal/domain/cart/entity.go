// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
)

// LineItem is a cart record associating a user with a product and a quantity
type LineItem struct {
	ID          string `json:"-"`
	Username    string `json:"username"`
	Company     string `json:"company,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Product     string `json:"product,omitempty"`
}

// NewLineItem builds a quantity-1 line item for username from a catalogue product
func NewLineItem(username string, p catalog.Product) LineItem {
	return LineItem{
		Username:    username,
		Company:     p.Company,
		Brand:       p.Brand,
		Model:       p.Model,
		Price:       p.Price,
		Quantity:    1,
		Image:       p.Image,
		Description: p.Description,
		Product:     p.Product,
	}
}

// Key returns the product identity of the line item
func (li LineItem) Key() catalog.ProductKey {
	company := li.Company
	if company == "" {
		company = li.Brand
	}
	return catalog.ProductKey{Company: company, Model: li.Model}
}

// EffectiveQuantity is the stored quantity, treating anything below 1 as 1
func (li LineItem) EffectiveQuantity() int {
	if li.Quantity < 1 {
		return 1
	}
	return li.Quantity
}

// Lines converts line items into pricing input
func Lines(items []LineItem) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, item := range items {
		lines[i] = pricing.Line{Price: item.Price, Quantity: item.Quantity}
	}
	return lines
}
