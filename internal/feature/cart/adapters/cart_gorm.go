// Package adapters provides the repository implementations for the cart feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront_backend/internal/feature/cart/domain/entity"
	"storefront_backend/internal/feature/cart/usecase"
)

// cartGorm is the gorm implementation of the CartRepository interface.
type cartGorm struct {
	db *gorm.DB
}

// Compile-time check that cartGorm implements CartRepository.
var _ usecase.CartRepository = (*cartGorm)(nil)

// NewCartGorm creates a new cartGorm with the given gorm.DB connection.
func NewCartGorm(db *gorm.DB) *cartGorm {
	return &cartGorm{db: db}
}

// Upsert inserts the line or increments its quantity in a single statement.
// The ON CONFLICT arithmetic runs in the database, so two concurrent adds
// for the same user both land; date_added is not touched on increment.
func (r *cartGorm) Upsert(ctx context.Context, userID, productID uint, quantity int, dateAdded time.Time) error {
	item := entity.Item{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		DateAdded: dateAdded,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + excluded.quantity"),
		}),
	}).Create(&item).Error
}

// Remove deletes the line if present; a missing line is not an error.
func (r *cartGorm) Remove(ctx context.Context, userID, productID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entity.Item{}).Error
}

// Clear deletes all lines for the user.
func (r *cartGorm) Clear(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.Item{}).Error
}

// Items returns the user's cart lines, oldest first.
func (r *cartGorm) Items(ctx context.Context, userID uint) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_added ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveProductLines deletes every user's line for the product. Used by the
// catalog feature when a product is deleted.
func (r *cartGorm) RemoveProductLines(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&entity.Item{}).Error
}
