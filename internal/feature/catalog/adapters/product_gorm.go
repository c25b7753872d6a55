// Package adapters provides the repository implementations for the catalog feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/feature/catalog/usecase"
)

// productGorm is the gorm implementation of the ProductRepository interface.
type productGorm struct {
	db *gorm.DB
}

// Compile-time check that productGorm implements ProductRepository.
var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductGorm creates a new productGorm with the given gorm.DB connection.
func NewProductGorm(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

// Create persists a new product.
func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID retrieves a product by ID.
// Returns usecase.ErrProductNotFound when no product matches.
func (r *productGorm) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindPage returns one page of products, newest first, plus the total count.
func (r *productGorm) FindPage(ctx context.Context, page, perPage int) ([]entity.Product, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&entity.Product{}), page, perPage)
}

// FindPageByOwner returns one page of a single user's products.
func (r *productGorm) FindPageByOwner(ctx context.Context, ownerID uint, page, perPage int) ([]entity.Product, int64, error) {
	tx := r.db.WithContext(ctx).Model(&entity.Product{}).Where("user_id = ?", ownerID)
	return r.findPage(ctx, tx, page, perPage)
}

func (r *productGorm) findPage(_ context.Context, tx *gorm.DB, page, perPage int) ([]entity.Product, int64, error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []entity.Product
	offset := 0
	if page > 0 {
		offset = (page - 1) * perPage
	}
	if err := tx.Order("created_at DESC").Offset(offset).Limit(perPage).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Save writes back a mutated product.
func (r *productGorm) Save(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a product by ID.
func (r *productGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Product{}).Error
}
