package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/feature/catalog/domain/entity"
)

// mockProductRepository is a mock implementation of the ProductRepository interface.
type mockProductRepository struct {
	CreateFunc          func(ctx context.Context, p *entity.Product) error
	FindByIDFunc        func(ctx context.Context, id uint) (*entity.Product, error)
	FindPageFunc        func(ctx context.Context, page, perPage int) ([]entity.Product, int64, error)
	FindPageByOwnerFunc func(ctx context.Context, ownerID uint, page, perPage int) ([]entity.Product, int64, error)
	SaveFunc            func(ctx context.Context, p *entity.Product) error
	DeleteFunc          func(ctx context.Context, id uint) error
}

func (m *mockProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	p.ID = 1
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrProductNotFound
}

func (m *mockProductRepository) FindPage(ctx context.Context, page, perPage int) ([]entity.Product, int64, error) {
	if m.FindPageFunc != nil {
		return m.FindPageFunc(ctx, page, perPage)
	}
	return nil, 0, nil
}

func (m *mockProductRepository) FindPageByOwner(ctx context.Context, ownerID uint, page, perPage int) ([]entity.Product, int64, error) {
	if m.FindPageByOwnerFunc != nil {
		return m.FindPageByOwnerFunc(ctx, ownerID, page, perPage)
	}
	return nil, 0, nil
}

func (m *mockProductRepository) Save(ctx context.Context, p *entity.Product) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, p)
	}
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockObjectStore records uploads and deletions in memory.
type mockObjectStore struct {
	uploads  []string
	deletes  []string
	uploadFn func(ctx context.Context, key, contentType string, body []byte) (string, error)
}

func (m *mockObjectStore) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	m.uploads = append(m.uploads, key)
	if m.uploadFn != nil {
		return m.uploadFn(ctx, key, contentType, body)
	}
	return "https://cdn.example.com/" + key, nil
}

func (m *mockObjectStore) Delete(ctx context.Context, url string) error {
	m.deletes = append(m.deletes, url)
	return nil
}

func (m *mockObjectStore) ImageKey(ext string) string {
	return "products/test" + ext
}

// mockCartPruner counts cascade calls.
type mockCartPruner struct {
	pruned []uint
}

func (m *mockCartPruner) RemoveProductLines(ctx context.Context, productID uint) error {
	m.pruned = append(m.pruned, productID)
	return nil
}

func validImage() ImageUpload {
	return ImageUpload{Data: []byte("fake-png-bytes"), ContentType: "image/png"}
}

func TestProductUsecase_List(t *testing.T) {
	t.Run("page below one falls back to the first page", func(t *testing.T) {
		var requestedPage int
		repo := &mockProductRepository{
			FindPageFunc: func(ctx context.Context, page, perPage int) ([]entity.Product, int64, error) {
				requestedPage = page
				return []entity.Product{{ID: 1}}, 1, nil
			},
		}
		uc := NewProductUsecase(repo, &mockObjectStore{}, &mockCartPruner{})

		_, err := uc.List(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, 1, requestedPage)
	})

	t.Run("total pages round up", func(t *testing.T) {
		repo := &mockProductRepository{
			FindPageFunc: func(ctx context.Context, page, perPage int) ([]entity.Product, int64, error) {
				return make([]entity.Product, perPage), 17, nil
			},
		}
		uc := NewProductUsecase(repo, &mockObjectStore{}, &mockCartPruner{})

		result, err := uc.List(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalPages, "17 products at 8 per page is 3 pages")
		assert.Equal(t, int64(17), result.TotalProducts)
	})

	t.Run("empty page yields empty slice, not nil", func(t *testing.T) {
		uc := NewProductUsecase(&mockProductRepository{}, &mockObjectStore{}, &mockCartPruner{})

		result, err := uc.List(context.Background(), 4)

		require.NoError(t, err)
		assert.NotNil(t, result.Products)
		assert.Empty(t, result.Products)
	})
}

func TestProductUsecase_Create(t *testing.T) {
	t.Run("rejects blank name and non-positive price", func(t *testing.T) {
		uc := NewProductUsecase(&mockProductRepository{}, &mockObjectStore{}, &mockCartPruner{})

		_, err := uc.Create(context.Background(), 1, CreateInput{Name: "  ", Price: 10}, validImage())
		assert.Error(t, err)

		_, err = uc.Create(context.Background(), 1, CreateInput{Name: "Mug", Price: 0}, validImage())
		assert.Error(t, err)
	})

	t.Run("rejects non-image uploads", func(t *testing.T) {
		uc := NewProductUsecase(&mockProductRepository{}, &mockObjectStore{}, &mockCartPruner{})

		_, err := uc.Create(context.Background(), 1, CreateInput{Name: "Mug", Price: 10},
			ImageUpload{Data: []byte("%PDF"), ContentType: "application/pdf"})

		assert.Error(t, err)
	})

	t.Run("uploads the image and persists under the owner", func(t *testing.T) {
		store := &mockObjectStore{}
		repo := &mockProductRepository{}
		uc := NewProductUsecase(repo, store, &mockCartPruner{})

		product, err := uc.Create(context.Background(), 7, CreateInput{Name: " Mug ", Price: 9.5}, validImage())

		require.NoError(t, err)
		assert.Equal(t, "Mug", product.Name)
		assert.Equal(t, uint(7), product.UserID)
		assert.Equal(t, "https://cdn.example.com/products/test.png", product.ImageURL)
		assert.Len(t, store.uploads, 1)
	})
}

func TestProductUsecase_Update(t *testing.T) {
	existing := func() *entity.Product {
		return &entity.Product{ID: 3, Name: "Old", Price: 5, UserID: 7, ImageURL: "https://cdn.example.com/products/old.png"}
	}

	t.Run("another user's product reads as not found", func(t *testing.T) {
		repo := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Product, error) {
				return existing(), nil
			},
		}
		uc := NewProductUsecase(repo, &mockObjectStore{}, &mockCartPruner{})

		_, err := uc.Update(context.Background(), 99, UpdateInput{ID: 3, Name: "New", Price: 6}, nil)

		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("edit without image keeps the current image", func(t *testing.T) {
		repo := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Product, error) {
				return existing(), nil
			},
		}
		store := &mockObjectStore{}
		uc := NewProductUsecase(repo, store, &mockCartPruner{})

		product, err := uc.Update(context.Background(), 7, UpdateInput{ID: 3, Name: "New", Price: 6}, nil)

		require.NoError(t, err)
		assert.Equal(t, "New", product.Name)
		assert.Equal(t, "https://cdn.example.com/products/old.png", product.ImageURL)
		assert.Empty(t, store.uploads)
	})

	t.Run("replacing the image releases the old one", func(t *testing.T) {
		repo := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Product, error) {
				return existing(), nil
			},
		}
		store := &mockObjectStore{}
		uc := NewProductUsecase(repo, store, &mockCartPruner{})

		img := validImage()
		product, err := uc.Update(context.Background(), 7, UpdateInput{ID: 3, Name: "New", Price: 6}, &img)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/products/test.png", product.ImageURL)
		assert.Equal(t, []string{"https://cdn.example.com/products/old.png"}, store.deletes)
	})

	t.Run("failed save keeps the old image in storage", func(t *testing.T) {
		repo := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Product, error) {
				return existing(), nil
			},
			SaveFunc: func(ctx context.Context, p *entity.Product) error {
				return errors.New("connection reset")
			},
		}
		store := &mockObjectStore{}
		uc := NewProductUsecase(repo, store, &mockCartPruner{})

		img := validImage()
		_, err := uc.Update(context.Background(), 7, UpdateInput{ID: 3, Name: "New", Price: 6}, &img)

		assert.Error(t, err)
		assert.NotContains(t, store.deletes, "https://cdn.example.com/products/old.png",
			"the stored record still references the old image, so it must survive a failed save")
	})
}

func TestProductUsecase_Delete(t *testing.T) {
	t.Run("cascades cart lines and releases the image", func(t *testing.T) {
		repo := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Product, error) {
				return &entity.Product{ID: id, UserID: 7, ImageURL: "https://cdn.example.com/products/x.png"}, nil
			},
		}
		store := &mockObjectStore{}
		pruner := &mockCartPruner{}
		uc := NewProductUsecase(repo, store, pruner)

		err := uc.Delete(context.Background(), 7, 3)

		require.NoError(t, err)
		assert.Equal(t, []uint{3}, pruner.pruned)
		assert.Equal(t, []string{"https://cdn.example.com/products/x.png"}, store.deletes)
	})

	t.Run("another user's product cannot be deleted", func(t *testing.T) {
		repo := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Product, error) {
				return &entity.Product{ID: id, UserID: 7}, nil
			},
		}
		pruner := &mockCartPruner{}
		uc := NewProductUsecase(repo, &mockObjectStore{}, pruner)

		err := uc.Delete(context.Background(), 99, 3)

		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Empty(t, pruner.pruned)
	})
}
