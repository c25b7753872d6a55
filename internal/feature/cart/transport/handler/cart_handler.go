// Package handler provides the HTTP handlers for the cart feature.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/feature/cart/domain/entity"
	"storefront_backend/internal/feature/cart/transport/http/dto"
	"storefront_backend/internal/platform/session"
)

// CartUsecase defines the cart operations this handler depends on.
type CartUsecase interface {
	AddToCart(ctx context.Context, userID, productID uint, quantity int) error
	RemoveFromCart(ctx context.Context, userID, productID uint) error
	ClearCart(ctx context.Context, userID uint) error
	GetPopulatedCart(ctx context.Context, userID uint) (*entity.PopulatedCart, error)
}

// CartHandler handles the cart endpoints. All routes sit behind the
// session middleware.
type CartHandler struct {
	cart CartUsecase
}

// NewCartHandler creates a new instance of CartHandler.
func NewCartHandler(cart CartUsecase) *CartHandler {
	return &CartHandler{cart: cart}
}

// cartView serializes a populated cart with its derived totals.
func cartView(cart *entity.PopulatedCart) gin.H {
	return gin.H{
		"items":         cart.Items,
		"totalQuantity": cart.TotalQuantity(),
		"totalPrice":    cart.TotalPrice(),
	}
}

// GetCart handles GET /api/getCart, returning the populated cart with
// its derived totals.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	cart, err := h.cart.GetPopulatedCart(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Cart retrieved", gin.H{"cart": cartView(cart)})
}

// AddToCart handles POST /api/addToCart.
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	var req dto.AddToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if err := h.cart.AddToCart(c.Request.Context(), userID, req.ProductID, quantity); err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusCreated, "Item added to cart", gin.H{
		"item": gin.H{"productId": req.ProductID, "quantity": quantity},
	})
}

// RemoveFromCart handles DELETE /api/removeFromCart/:id. Removing an item
// that is not in the cart succeeds.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		api.Fail(c, apperrors.Validation("Invalid product ID"))
		return
	}
	if err := h.cart.RemoveFromCart(c.Request.Context(), userID, uint(productID)); err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Item removed from cart", gin.H{"deletedId": uint(productID)})
}

// ClearCart handles DELETE /api/clearCart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	if err := h.cart.ClearCart(c.Request.Context(), userID); err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Cart cleared", nil)
}
