package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/feature/cart/domain/entity"
	catalogentity "storefront_backend/internal/feature/catalog/domain/entity"
	catalogusecase "storefront_backend/internal/feature/catalog/usecase"
)

// mockCartRepository is a mock implementation of the CartRepository interface.
type mockCartRepository struct {
	UpsertFunc func(ctx context.Context, userID, productID uint, quantity int, dateAdded time.Time) error
	RemoveFunc func(ctx context.Context, userID, productID uint) error
	ClearFunc  func(ctx context.Context, userID uint) error
	ItemsFunc  func(ctx context.Context, userID uint) ([]entity.Item, error)
}

func (m *mockCartRepository) Upsert(ctx context.Context, userID, productID uint, quantity int, dateAdded time.Time) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, productID, quantity, dateAdded)
	}
	return nil
}

func (m *mockCartRepository) Remove(ctx context.Context, userID, productID uint) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, productID)
	}
	return nil
}

func (m *mockCartRepository) Clear(ctx context.Context, userID uint) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, userID)
	}
	return nil
}

func (m *mockCartRepository) Items(ctx context.Context, userID uint) ([]entity.Item, error) {
	if m.ItemsFunc != nil {
		return m.ItemsFunc(ctx, userID)
	}
	return nil, nil
}

// mockProductReader is a mock implementation of the ProductReader interface.
type mockProductReader struct {
	FindByIDFunc func(ctx context.Context, id uint) (*catalogentity.Product, error)
}

func (m *mockProductReader) FindByID(ctx context.Context, id uint) (*catalogentity.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, catalogusecase.ErrProductNotFound
}

func TestCartUsecase_AddToCart(t *testing.T) {
	products := &mockProductReader{
		FindByIDFunc: func(ctx context.Context, id uint) (*catalogentity.Product, error) {
			return &catalogentity.Product{ID: id, Name: "Mug", Price: 9.5}, nil
		},
	}

	t.Run("quantity below one is rejected", func(t *testing.T) {
		uc := NewCartUsecase(&mockCartRepository{}, products)

		err := uc.AddToCart(context.Background(), 1, 2, 0)

		assert.Error(t, err)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		uc := NewCartUsecase(&mockCartRepository{}, &mockProductReader{})

		err := uc.AddToCart(context.Background(), 1, 99, 1)

		assert.ErrorIs(t, err, catalogusecase.ErrProductNotFound)
	})

	t.Run("valid add reaches the repository", func(t *testing.T) {
		var gotProduct uint
		var gotQuantity int
		repo := &mockCartRepository{
			UpsertFunc: func(ctx context.Context, userID, productID uint, quantity int, dateAdded time.Time) error {
				gotProduct = productID
				gotQuantity = quantity
				return nil
			},
		}
		uc := NewCartUsecase(repo, products)

		err := uc.AddToCart(context.Background(), 1, 2, 3)

		require.NoError(t, err)
		assert.Equal(t, uint(2), gotProduct)
		assert.Equal(t, 3, gotQuantity)
	})
}

func TestCartUsecase_GetPopulatedCart(t *testing.T) {
	t.Run("empty cart yields empty slice, not nil", func(t *testing.T) {
		uc := NewCartUsecase(&mockCartRepository{}, &mockProductReader{})

		cart, err := uc.GetPopulatedCart(context.Background(), 1)

		require.NoError(t, err)
		assert.NotNil(t, cart.Items)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.TotalQuantity())
		assert.Zero(t, cart.TotalPrice())
	})

	t.Run("totals derive from lines and current prices", func(t *testing.T) {
		repo := &mockCartRepository{
			ItemsFunc: func(ctx context.Context, userID uint) ([]entity.Item, error) {
				return []entity.Item{
					{UserID: userID, ProductID: 1, Quantity: 2},
					{UserID: userID, ProductID: 2, Quantity: 1},
				}, nil
			},
		}
		products := &mockProductReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*catalogentity.Product, error) {
				prices := map[uint]float64{1: 10.0, 2: 5.5}
				return &catalogentity.Product{ID: id, Price: prices[id]}, nil
			},
		}
		uc := NewCartUsecase(repo, products)

		cart, err := uc.GetPopulatedCart(context.Background(), 1)

		require.NoError(t, err)
		assert.Len(t, cart.Items, 2)
		assert.Equal(t, 3, cart.TotalQuantity())
		assert.InDelta(t, 25.5, cart.TotalPrice(), 1e-9)
	})

	t.Run("lines for deleted products are dropped", func(t *testing.T) {
		repo := &mockCartRepository{
			ItemsFunc: func(ctx context.Context, userID uint) ([]entity.Item, error) {
				return []entity.Item{
					{UserID: userID, ProductID: 1, Quantity: 1},
					{UserID: userID, ProductID: 2, Quantity: 4},
				}, nil
			},
		}
		products := &mockProductReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*catalogentity.Product, error) {
				if id == 2 {
					return nil, catalogusecase.ErrProductNotFound
				}
				return &catalogentity.Product{ID: id, Price: 1}, nil
			},
		}
		uc := NewCartUsecase(repo, products)

		cart, err := uc.GetPopulatedCart(context.Background(), 1)

		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, uint(1), cart.Items[0].ProductID)
	})
}

func TestCartUsecase_RemoveFromCart(t *testing.T) {
	t.Run("removing an absent line succeeds", func(t *testing.T) {
		uc := NewCartUsecase(&mockCartRepository{}, &mockProductReader{})

		err := uc.RemoveFromCart(context.Background(), 1, 42)

		assert.NoError(t, err)
	})
}
