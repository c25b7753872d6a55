// Package usecase implements the business logic for the auth feature.
package usecase

import "storefront_backend/internal/apperrors"

var (
	// ErrInvalidCredentials is returned on login for both an unknown email
	// and a password mismatch. The two cases must stay indistinguishable to
	// the caller to prevent account enumeration.
	ErrInvalidCredentials = apperrors.Validation("Invalid email or password")

	// ErrEmailAlreadyExists is returned when attempting to sign up with an
	// email that is already registered.
	ErrEmailAlreadyExists = apperrors.Validation("A user with this email already exists")

	// ErrInvalidResetToken is returned when consuming a password-reset token
	// that no user holds or whose expiry has passed.
	ErrInvalidResetToken = apperrors.Validation("Invalid or expired token")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperrors.NotFound("User not found")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = apperrors.Unauthorized("Session not found")
)
