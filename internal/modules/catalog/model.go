// README: Product record as served by the store catalog.
package catalog

import "strings"

// Product is a read-only catalog record. The kiosk never mutates products;
// category, subcategory and description exist only for keyword matching.
type Product struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
	Description string  `json:"description,omitempty"`
}

// SearchText returns the normalized concatenation of every text field,
// the haystack used by keyword heuristics.
func (p Product) SearchText() string {
	return Normalize(strings.Join([]string{p.Name, p.Description, p.Category, p.Subcategory}, " "))
}
