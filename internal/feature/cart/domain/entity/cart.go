// Package entity defines the cart line and its populated projections.
package entity

import (
	"time"

	catalogentity "storefront_backend/internal/feature/catalog/domain/entity"
)

// Item is one cart line: a product reference with a quantity. A product
// appears at most once per user; adding an already-present product
// increments the existing line instead of creating a second one.
type Item struct {
	ID uint `gorm:"primaryKey" json:"-"`

	// UserID + ProductID form the cart's uniqueness constraint.
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"-"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"productId"`

	// Quantity is always >= 1. Lines reaching zero are removed, never kept.
	Quantity int `gorm:"not null" json:"quantity"`

	// DateAdded is when the line was first created. Incrementing an
	// existing line does not reset it.
	DateAdded time.Time `json:"dateAdded"`
}

// TableName keeps the embedded-cart naming from the document model.
func (Item) TableName() string { return "cart_items" }

// PopulatedItem joins a cart line with the product as it is now, not as
// purchased. Display-only; never persisted.
type PopulatedItem struct {
	ProductID uint                  `json:"productId"`
	Product   catalogentity.Product `json:"product"`
	Quantity  int                   `json:"quantity"`
	DateAdded time.Time             `json:"dateAdded"`
}

// PopulatedCart is the cart view with lines joined to live product data.
// Totals are computed from the lines at read time and never stored, so
// they cannot drift from the line items.
type PopulatedCart struct {
	Items []PopulatedItem
}

// TotalQuantity is the sum of line quantities.
func (c *PopulatedCart) TotalQuantity() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of quantity times current product price over all lines.
func (c *PopulatedCart) TotalPrice() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += float64(it.Quantity) * it.Product.Price
	}
	return total
}
