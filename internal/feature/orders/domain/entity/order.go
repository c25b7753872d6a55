// Package entity defines the order aggregate with its immutable item snapshots.
package entity

import "time"

// Order is an immutable record of a purchase attempt. Item snapshots and
// the total are fixed at creation; only InvoiceURL may be set afterwards,
// exactly once, from empty to a value.
type Order struct {
	// ID is the unique identifier for the order.
	ID uint `gorm:"primaryKey" json:"id"`

	// UserID is the owning user. Orders are only visible to their owner.
	UserID uint `gorm:"index;not null" json:"userId"`

	// Items are the product snapshots captured at order time.
	Items []Item `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	// TotalPrice is the sum of the snapshot line totals.
	TotalPrice float64 `gorm:"not null" json:"totalPrice"`

	// InvoiceURL is the memoized invoice location, empty until the first
	// invoice request generates and uploads the PDF.
	InvoiceURL string `gorm:"size:512" json:"invoiceUrl,omitempty"`

	// CreatedAt is the order placement time.
	CreatedAt time.Time `json:"createdAt"`
}

// Item is one order line with the product name and price captured at order
// time. It stays unchanged even if the source product is edited or deleted.
type Item struct {
	ID      uint `gorm:"primaryKey" json:"-"`
	OrderID uint `gorm:"index;not null" json:"-"`

	ProductID    uint    `gorm:"not null" json:"productId"`
	ProductName  string  `gorm:"size:255;not null" json:"productName"`
	ProductPrice float64 `gorm:"not null" json:"productPrice"`
	ImageURL     string  `gorm:"size:512" json:"imageUrl"`
	Quantity     int     `gorm:"not null" json:"quantity"`
}

// TableName keeps the snapshot table distinct from live products.
func (Item) TableName() string { return "order_items" }

// LineTotal is quantity times the snapshot unit price.
func (i *Item) LineTotal() float64 {
	return float64(i.Quantity) * i.ProductPrice
}
