// internal/domain/wishlist/entity.go
package wishlist

import "github.com/your-org/ecart-storefront/internal/domain/catalog"

// Entry is a saved-for-later record associating a user with a product
type Entry struct {
	ID          string `json:"-"`
	Username    string `json:"username"`
	Company     string `json:"company,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Product     string `json:"product,omitempty"`
}

// NewEntry builds a wishlist entry for username from a catalogue product
func NewEntry(username string, p catalog.Product) Entry {
	return Entry{
		Username:    username,
		Company:     p.Company,
		Brand:       p.Brand,
		Model:       p.Model,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Product:     p.Product,
	}
}

// Key returns the product identity of the entry
func (e Entry) Key() catalog.ProductKey {
	return e.AsProduct().Key()
}

// AsProduct returns the catalogue product the entry was saved from
func (e Entry) AsProduct() catalog.Product {
	return catalog.Product{
		Company:     e.Company,
		Brand:       e.Brand,
		Model:       e.Model,
		Price:       e.Price,
		Image:       e.Image,
		Description: e.Description,
		Product:     e.Product,
	}
}

// Outcome tells which branch a toggle took
type Outcome string

const (
	Added   Outcome = "added"
	Removed Outcome = "removed"
)

// ToggleResult reports a toggle and the entry it created or deleted
type ToggleResult struct {
	Outcome Outcome `json:"outcome"`
	Entry   Entry   `json:"entry"`
}

// MoveResult reports a move to the cart
type MoveResult struct {
	// AddedToCart is false when the cart already held the product
	AddedToCart bool   `json:"addedToCart"`
	CartItemID  string `json:"cartItemId"`
}
