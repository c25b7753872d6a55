// Package usecase implements the business logic for the orders feature:
// the cart-to-order pipeline and the memoized invoice generation.
package usecase

import "storefront_backend/internal/apperrors"

var (
	// ErrCartEmpty is returned when placing an order on an empty cart.
	ErrCartEmpty = apperrors.Validation("Cart is empty")

	// ErrOrderNotFound is returned when no order matches the given criteria.
	ErrOrderNotFound = apperrors.NotFound("Order not found")

	// ErrNotOrderOwner is returned when a user requests an invoice for an
	// order they do not own.
	ErrNotOrderOwner = apperrors.Forbidden("Unauthorized access")
)
