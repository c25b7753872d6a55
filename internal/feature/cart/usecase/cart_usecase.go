// Package usecase implements the business logic for the cart feature.
package usecase

import (
	"context"
	"errors"
	"time"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/feature/cart/domain/entity"
	catalogentity "storefront_backend/internal/feature/catalog/domain/entity"
	catalogusecase "storefront_backend/internal/feature/catalog/usecase"
)

// CartRepository abstracts the persistence layer for cart lines.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
// Mutations are expressed atomically (upsert/delete), never read-modify-write,
// so concurrent cart updates for one user cannot lose writes.
type CartRepository interface {
	// Upsert adds quantity to the user's line for the product, creating the
	// line with the given timestamp when absent. The increment happens in
	// the database in one statement.
	Upsert(ctx context.Context, userID, productID uint, quantity int, dateAdded time.Time) error

	// Remove deletes the line if present. Removing an absent line succeeds.
	Remove(ctx context.Context, userID, productID uint) error

	// Clear deletes all of the user's lines.
	Clear(ctx context.Context, userID uint) error

	// Items returns the user's raw cart lines.
	Items(ctx context.Context, userID uint) ([]entity.Item, error)
}

// ProductReader resolves products for validation and population.
type ProductReader interface {
	// FindByID returns the product or catalogusecase.ErrProductNotFound.
	FindByID(ctx context.Context, id uint) (*catalogentity.Product, error)
}

// cartUsecase implements the cart business logic.
type cartUsecase struct {
	carts    CartRepository
	products ProductReader
}

// NewCartUsecase creates a new instance of cartUsecase.
func NewCartUsecase(carts CartRepository, products ProductReader) *cartUsecase {
	return &cartUsecase{carts: carts, products: products}
}

// AddToCart adds quantity of the product to the user's cart. The product
// must exist; an already-present product has its line incremented without
// resetting its dateAdded.
func (u *cartUsecase) AddToCart(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity < 1 {
		return apperrors.Validation("Quantity must be greater than 0")
	}
	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, catalogusecase.ErrProductNotFound) {
			return err
		}
		return apperrors.Internal("Failed to add product to cart", err)
	}
	if err := u.carts.Upsert(ctx, userID, productID, quantity, time.Now()); err != nil {
		return apperrors.Internal("Failed to add product to cart", err)
	}
	return nil
}

// RemoveFromCart removes the product's line. Removing a product that is not
// in the cart succeeds silently.
func (u *cartUsecase) RemoveFromCart(ctx context.Context, userID, productID uint) error {
	if err := u.carts.Remove(ctx, userID, productID); err != nil {
		return apperrors.Internal("Failed to remove product from cart", err)
	}
	return nil
}

// ClearCart empties the user's cart unconditionally.
func (u *cartUsecase) ClearCart(ctx context.Context, userID uint) error {
	if err := u.carts.Clear(ctx, userID); err != nil {
		return apperrors.Internal("Failed to clear cart", err)
	}
	return nil
}

// GetPopulatedCart joins the user's cart lines against current product
// state. Lines whose product no longer exists are dropped silently: product
// deletion already cascades line removal, so an orphan only appears in the
// window between those two writes.
func (u *cartUsecase) GetPopulatedCart(ctx context.Context, userID uint) (*entity.PopulatedCart, error) {
	items, err := u.carts.Items(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve cart", err)
	}

	cart := &entity.PopulatedCart{Items: []entity.PopulatedItem{}}
	for _, item := range items {
		product, err := u.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalogusecase.ErrProductNotFound) {
				continue
			}
			return nil, apperrors.Internal("Failed to retrieve cart", err)
		}
		cart.Items = append(cart.Items, entity.PopulatedItem{
			ProductID: item.ProductID,
			Product:   *product,
			Quantity:  item.Quantity,
			DateAdded: item.DateAdded,
		})
	}
	return cart, nil
}
