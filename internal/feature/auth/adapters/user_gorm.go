// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"storefront_backend/internal/feature/auth/domain/entity"
	"storefront_backend/internal/feature/auth/usecase"
)

// userGorm is the gorm implementation of the UserRepository interface.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new userGorm with the given gorm.DB connection.
// Constructor for dependency injection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user. Returns usecase.ErrEmailAlreadyExists on a
// unique-constraint violation (requires gorm's TranslateError option).
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email.
// Returns usecase.ErrUserNotFound when no user matches.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// Returns usecase.ErrUserNotFound when no user matches.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetResetToken stores the token pair on the user row.
func (r *userGorm) SetResetToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
		}).Error
}

// ClearResetToken nils both token fields.
func (r *userGorm) ClearResetToken(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":            nil,
			"reset_token_expires_at": nil,
		}).Error
}

// FindByResetToken retrieves the user holding the given reset token.
// Returns usecase.ErrUserNotFound when no user holds it.
func (r *userGorm) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePasswordAndClearResetToken replaces the hash and clears the token
// pair in a single UPDATE so the two can never diverge.
func (r *userGorm) UpdatePasswordAndClearResetToken(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":               passwordHash,
			"reset_token":            nil,
			"reset_token_expires_at": nil,
		}).Error
}
