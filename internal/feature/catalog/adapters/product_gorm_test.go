package adapters

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/feature/catalog/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Product{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedProducts inserts n products for the given owner with strictly
// increasing creation times so the newest-first ordering is observable.
func seedProducts(t *testing.T, repo *productGorm, ownerID uint, n int) {
	t.Helper()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		p := &entity.Product{
			Name:      fmt.Sprintf("Product %d", i+1),
			Price:     9.99,
			UserID:    ownerID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

func TestProductGorm_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductGorm(db)

	p := &entity.Product{Name: "Mug", Price: 9.99, UserID: 1}
	require.NoError(t, repo.Create(context.Background(), p))

	t.Run("returns the matching product", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, "Mug", found.Name)
	})

	t.Run("unknown id maps to ErrProductNotFound", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 999)

		assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	})
}

func TestProductGorm_FindPage(t *testing.T) {
	t.Run("pages newest first with the full count", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductGorm(db)
		seedProducts(t, repo, 1, 5)

		products, total, err := repo.FindPage(context.Background(), 1, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, products, 2)
		assert.Equal(t, "Product 5", products[0].Name)
		assert.Equal(t, "Product 4", products[1].Name)
	})

	t.Run("later pages pick up where the previous left off", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductGorm(db)
		seedProducts(t, repo, 1, 5)

		products, total, err := repo.FindPage(context.Background(), 3, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, products, 1)
		assert.Equal(t, "Product 1", products[0].Name)
	})

	t.Run("page past the end is empty but keeps the count", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductGorm(db)
		seedProducts(t, repo, 1, 3)

		products, total, err := repo.FindPage(context.Background(), 5, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, products)
	})
}

func TestProductGorm_FindPageByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductGorm(db)
	seedProducts(t, repo, 1, 3)
	seedProducts(t, repo, 2, 2)

	products, total, err := repo.FindPageByOwner(context.Background(), 1, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.Equal(t, uint(1), p.UserID)
	}
}

func TestProductGorm_SaveAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductGorm(db)

	p := &entity.Product{Name: "Mug", Price: 9.99, UserID: 1}
	require.NoError(t, repo.Create(context.Background(), p))

	p.Price = 12.50
	require.NoError(t, repo.Save(context.Background(), p))

	fresh, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.50, fresh.Price)

	require.NoError(t, repo.Delete(context.Background(), p.ID))

	_, err = repo.FindByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
}
