package usecase

import (
	"context"

	"storefront_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (the cookie token value).
	// Returns ErrSessionNotFound if the session does not exist or expired.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes a session, ending it immediately.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID removes all sessions for a given user.
	DeleteByUserID(ctx context.Context, userID uint) error
}
