// internal/domain/catalog/entity.go
package catalog

import "strings"

// ProductKey is the de facto identity of a catalogue product across
// collections that share no primary key
type ProductKey struct {
	Company string `json:"company"`
	Model   string `json:"model"`
}

// Product is one catalogue entry
type Product struct {
	ID          string `json:"-"`
	Company     string `json:"company,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Product     string `json:"product,omitempty"`
}

// Maker returns the company, falling back to the brand
func (p Product) Maker() string {
	if p.Company != "" {
		return p.Company
	}
	return p.Brand
}

// Key returns the product's identity
func (p Product) Key() ProductKey {
	return ProductKey{Company: p.Maker(), Model: p.Model}
}

func (p Product) matches(query string) bool {
	return strings.Contains(strings.ToLower(p.Model), query) ||
		strings.Contains(strings.ToLower(p.Maker()), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

// Category maps a URL slug to its catalogue collection
type Category struct {
	Slug       string `json:"slug"`
	Label      string `json:"label"`
	Title      string `json:"title"`
	Collection string `json:"-"`
}

// DefaultCategories are the six storefront categories
func DefaultCategories() []Category {
	return []Category{
		{Slug: "mobiles", Label: "mobile", Title: "Mobiles", Collection: "mobileData"},
		{Slug: "acs", Label: "ac", Title: "Air Conditioners", Collection: "acData"},
		{Slug: "computers", Label: "computer", Title: "Computers", Collection: "computerData"},
		{Slug: "fridges", Label: "fridge", Title: "Refrigerators", Collection: "fridgeData"},
		{Slug: "tvs", Label: "tv", Title: "Televisions", Collection: "tvData"},
		{Slug: "watches", Label: "watch", Title: "Watches", Collection: "watchData"},
	}
}

// CategoriesWithCollections returns the default categories with their
// collection names replaced by overrides, keyed by slug
func CategoriesWithCollections(overrides map[string]string) []Category {
	categories := DefaultCategories()
	for i, c := range categories {
		if coll, ok := overrides[c.Slug]; ok && coll != "" {
			categories[i].Collection = coll
		}
	}
	return categories
}

// Featured pairs a category with its first product
type Featured struct {
	Category Category `json:"category"`
	Product  Product  `json:"product"`
}
