// Package adapters provides the gorm-backed order repository.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront_backend/internal/feature/orders/domain/entity"
	"storefront_backend/internal/feature/orders/usecase"
)

type orderGorm struct {
	db *gorm.DB
}

// NewOrderGorm creates a gorm-backed order repository.
func NewOrderGorm(db *gorm.DB) *orderGorm {
	return &orderGorm{db: db}
}

// Create persists the order and its item snapshots in one transaction.
// gorm inserts the Items association together with the parent row.
func (r *orderGorm) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderGorm) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderGorm) FindByUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// SetInvoiceURL writes the URL only when none is stored, so the first
// writer wins and the URL never changes afterwards.
func (r *orderGorm) SetInvoiceURL(ctx context.Context, orderID uint, url string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ? AND (invoice_url = '' OR invoice_url IS NULL)", orderID).
		Update("invoice_url", url)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Compile-time interface check
var _ usecase.OrderRepository = (*orderGorm)(nil)
