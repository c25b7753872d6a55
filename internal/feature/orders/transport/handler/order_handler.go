// Package handler exposes the order endpoints over HTTP.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/feature/orders/domain/entity"
	"storefront_backend/internal/feature/orders/usecase"
	"storefront_backend/internal/platform/session"
)

// OrderUsecase defines the order operations the handler depends on.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, userID uint) (*usecase.CheckoutSession, error)
	ListOrders(ctx context.Context, userID uint) ([]entity.Order, error)
	GetOrder(ctx context.Context, userID, orderID uint) (*entity.Order, error)
	GetInvoiceURL(ctx context.Context, userID, orderID uint) (string, error)
}

// OrderHandler handles order placement, history and invoice requests.
type OrderHandler struct {
	usecase OrderUsecase
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(u OrderUsecase) *OrderHandler {
	return &OrderHandler{usecase: u}
}

// PlaceOrder converts the caller's cart into an order and returns the
// checkout session the client should redirect to.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	checkout, err := h.usecase.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusCreated, "Order placed successfully", gin.H{
		"checkoutUrl": checkout.URL,
		"sessionId":   checkout.ID,
	})
}

// GetOrders returns the caller's order history, newest first.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	orders, err := h.usecase.ListOrders(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Orders retrieved successfully", gin.H{"orders": orders})
}

// GetOrder returns one of the caller's orders by id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	id, err := orderIDParam(c)
	if err != nil {
		api.Fail(c, err)
		return
	}
	order, err := h.usecase.GetOrder(c.Request.Context(), userID, id)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Order retrieved successfully", gin.H{"order": order})
}

// GetInvoice returns the invoice URL for an order, generating the PDF on
// the first request.
func (h *OrderHandler) GetInvoice(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	id, err := orderIDParam(c)
	if err != nil {
		api.Fail(c, err)
		return
	}
	url, err := h.usecase.GetInvoiceURL(c.Request.Context(), userID, id)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Invoice ready", gin.H{"invoiceUrl": url})
}

func orderIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("Invalid order id")
	}
	return uint(id), nil
}
