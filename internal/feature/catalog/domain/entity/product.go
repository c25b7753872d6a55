// Package entity defines the domain entities for the catalog feature.
package entity

import "time"

// Product is a catalog item. It is created and mutated only by its owning
// user; orders snapshot its name and price, so later edits never affect
// placed orders.
type Product struct {
	// ID is the unique identifier for the product.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the display name shown in the catalog and on invoices.
	Name string `gorm:"size:255;not null" json:"name"`

	// Price is the current unit price. Always positive.
	Price float64 `gorm:"not null" json:"price"`

	// Description is the free-form product description.
	Description string `gorm:"type:text" json:"description"`

	// ImageURL is the durable object-storage URL of the product image.
	ImageURL string `gorm:"size:512" json:"image"`

	// UserID is the owning user. Only the owner may edit or delete.
	UserID uint `gorm:"index;not null" json:"userId"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Page is one page of the catalog listing with pagination metadata.
type Page struct {
	Products      []Product `json:"products"`
	TotalPages    int       `json:"totalPages"`
	TotalProducts int64     `json:"totalProducts"`
	CurrentPage   int       `json:"currentPage"`
}
