package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/feature/cart/domain/entity"
	catalogentity "storefront_backend/internal/feature/catalog/domain/entity"
	catalogusecase "storefront_backend/internal/feature/catalog/usecase"
	"storefront_backend/internal/platform/session"
)

// mockCartUsecase is a mock implementation of the CartUsecase interface.
type mockCartUsecase struct {
	AddToCartFunc        func(ctx context.Context, userID, productID uint, quantity int) error
	RemoveFromCartFunc   func(ctx context.Context, userID, productID uint) error
	ClearCartFunc        func(ctx context.Context, userID uint) error
	GetPopulatedCartFunc func(ctx context.Context, userID uint) (*entity.PopulatedCart, error)
}

func (m *mockCartUsecase) AddToCart(ctx context.Context, userID, productID uint, quantity int) error {
	if m.AddToCartFunc != nil {
		return m.AddToCartFunc(ctx, userID, productID, quantity)
	}
	return nil
}

func (m *mockCartUsecase) RemoveFromCart(ctx context.Context, userID, productID uint) error {
	if m.RemoveFromCartFunc != nil {
		return m.RemoveFromCartFunc(ctx, userID, productID)
	}
	return nil
}

func (m *mockCartUsecase) ClearCart(ctx context.Context, userID uint) error {
	if m.ClearCartFunc != nil {
		return m.ClearCartFunc(ctx, userID)
	}
	return nil
}

func (m *mockCartUsecase) GetPopulatedCart(ctx context.Context, userID uint) (*entity.PopulatedCart, error) {
	if m.GetPopulatedCartFunc != nil {
		return m.GetPopulatedCartFunc(ctx, userID)
	}
	return &entity.PopulatedCart{Items: []entity.PopulatedItem{}}, nil
}

// testContext builds a gin context carrying an authenticated user.
func testContext(t *testing.T, method, target string, body gin.H, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		c.Set(session.ContextUserID, userID)
	}
	return c, w
}

func TestCartHandler_GetCart(t *testing.T) {
	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		h := NewCartHandler(&mockCartUsecase{})
		c, w := testContext(t, http.MethodGet, "/api/getCart", nil, 0)

		h.GetCart(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cart returned with derived totals", func(t *testing.T) {
		uc := &mockCartUsecase{
			GetPopulatedCartFunc: func(ctx context.Context, userID uint) (*entity.PopulatedCart, error) {
				return &entity.PopulatedCart{Items: []entity.PopulatedItem{
					{ProductID: 1, Product: catalogentity.Product{ID: 1, Price: 10}, Quantity: 2},
				}}, nil
			},
		}
		h := NewCartHandler(uc)
		c, w := testContext(t, http.MethodGet, "/api/getCart", nil, 1)

		h.GetCart(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalQuantity":2`)
		assert.Contains(t, w.Body.String(), `"totalPrice":20`)
	})
}

func TestCartHandler_AddToCart(t *testing.T) {
	t.Run("quantity defaults to one", func(t *testing.T) {
		var gotQuantity int
		uc := &mockCartUsecase{
			AddToCartFunc: func(ctx context.Context, userID, productID uint, quantity int) error {
				gotQuantity = quantity
				return nil
			},
		}
		h := NewCartHandler(uc)
		c, w := testContext(t, http.MethodPost, "/api/addToCart", gin.H{"productId": 3}, 1)

		h.AddToCart(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, gotQuantity)
	})

	t.Run("explicit zero quantity is rejected, not defaulted", func(t *testing.T) {
		var gotQuantity int
		uc := &mockCartUsecase{
			AddToCartFunc: func(ctx context.Context, userID, productID uint, quantity int) error {
				gotQuantity = quantity
				return apperrors.Validation("Quantity must be greater than 0")
			},
		}
		h := NewCartHandler(uc)
		c, w := testContext(t, http.MethodPost, "/api/addToCart", gin.H{"productId": 3, "quantity": 0}, 1)

		h.AddToCart(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, gotQuantity, "a present zero must reach validation unchanged")
	})

	t.Run("unknown product maps to 404", func(t *testing.T) {
		uc := &mockCartUsecase{
			AddToCartFunc: func(ctx context.Context, userID, productID uint, quantity int) error {
				return catalogusecase.ErrProductNotFound
			},
		}
		h := NewCartHandler(uc)
		c, w := testContext(t, http.MethodPost, "/api/addToCart", gin.H{"productId": 99, "quantity": 1}, 1)

		h.AddToCart(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartHandler_RemoveFromCart(t *testing.T) {
	t.Run("invalid product id", func(t *testing.T) {
		h := NewCartHandler(&mockCartUsecase{})
		c, w := testContext(t, http.MethodDelete, "/api/removeFromCart/abc", nil, 1)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h.RemoveFromCart(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("echoes the removed product id", func(t *testing.T) {
		h := NewCartHandler(&mockCartUsecase{})
		c, w := testContext(t, http.MethodDelete, "/api/removeFromCart/3", nil, 1)
		c.Params = gin.Params{{Key: "id", Value: "3"}}

		h.RemoveFromCart(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deletedId":3`)
	})
}

func TestCartHandler_ClearCart(t *testing.T) {
	var clearedFor uint
	uc := &mockCartUsecase{
		ClearCartFunc: func(ctx context.Context, userID uint) error {
			clearedFor = userID
			return nil
		},
	}
	h := NewCartHandler(uc)
	c, w := testContext(t, http.MethodDelete, "/api/clearCart", nil, 5)

	h.ClearCart(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), clearedFor)
}
