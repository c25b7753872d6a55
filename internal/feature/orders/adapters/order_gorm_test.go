package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront_backend/internal/feature/orders/domain/entity"
	"storefront_backend/internal/feature/orders/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Order{}, &entity.Item{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func sampleOrder(userID uint) *entity.Order {
	return &entity.Order{
		UserID: userID,
		Items: []entity.Item{
			{ProductID: 1, ProductName: "Mug", ProductPrice: 9.99, Quantity: 2},
			{ProductID: 2, ProductName: "Poster", ProductPrice: 14.50, Quantity: 1},
		},
		TotalPrice: 34.48,
	}
}

func TestOrderGorm_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderGorm(db)

	order := sampleOrder(1)
	err := repo.Create(context.Background(), order)

	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.NotZero(t, order.Items[0].ID, "item snapshots persist with the order")

	stored, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, "Mug", stored.Items[0].ProductName)
}

func TestOrderGorm_FindByID(t *testing.T) {
	t.Run("missing order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOrderGorm(db)

		_, err := repo.FindByID(context.Background(), 99)

		assert.ErrorIs(t, err, usecase.ErrOrderNotFound)
	})
}

func TestOrderGorm_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderGorm(db)

	require.NoError(t, repo.Create(context.Background(), sampleOrder(1)))
	require.NoError(t, repo.Create(context.Background(), sampleOrder(1)))
	require.NoError(t, repo.Create(context.Background(), sampleOrder(2)))

	orders, err := repo.FindByUser(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, uint(1), o.UserID)
		assert.Len(t, o.Items, 2)
	}
}

func TestOrderGorm_SetInvoiceURL(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderGorm(db)

	order := sampleOrder(1)
	require.NoError(t, repo.Create(context.Background(), order))

	won, err := repo.SetInvoiceURL(context.Background(), order.ID, "https://cdn.example.com/a.pdf")
	require.NoError(t, err)
	assert.True(t, won, "first write wins")

	won, err = repo.SetInvoiceURL(context.Background(), order.ID, "https://cdn.example.com/b.pdf")
	require.NoError(t, err)
	assert.False(t, won, "second write must not overwrite")

	stored, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.pdf", stored.InvoiceURL)
}
