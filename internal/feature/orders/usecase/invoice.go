package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/feature/orders/domain/entity"
)

// ObjectStore uploads rendered invoices and returns their public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// InvoiceRenderer turns an order snapshot into a PDF document.
type InvoiceRenderer interface {
	Render(order *entity.Order, purchaserName string) ([]byte, error)
}

// orderReference is the external identifier used for checkout and invoices.
func orderReference(orderID uint) string {
	return fmt.Sprintf("order_%d", orderID)
}

func invoiceKey(orderID uint) string {
	return fmt.Sprintf("invoices/invoice_%d.pdf", orderID)
}

// GetInvoiceURL returns the invoice URL for one of the user's orders,
// rendering and uploading the PDF on first request and reusing the stored
// URL afterwards.
//
// Concurrent first requests may each render and upload; the conditional
// update ensures exactly one URL wins and all callers observe it. Renders
// are deterministic for an immutable order, so a lost upload is identical
// content under the same key.
func (u *orderUsecase) GetInvoiceURL(ctx context.Context, userID, orderID uint) (string, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return "", err
		}
		return "", apperrors.Internal("Failed to retrieve order", err)
	}
	if order.UserID != userID {
		return "", ErrNotOrderOwner
	}
	if order.InvoiceURL != "" {
		return order.InvoiceURL, nil
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return "", apperrors.Internal("Failed to generate invoice", err)
	}

	pdf, err := u.renderer.Render(order, user.FullName())
	if err != nil {
		return "", apperrors.Internal("Failed to generate invoice", err)
	}

	url, err := u.store.Upload(ctx, invoiceKey(order.ID), "application/pdf", pdf)
	if err != nil {
		return "", apperrors.Internal("Failed to store invoice", err)
	}

	won, err := u.orders.SetInvoiceURL(ctx, order.ID, url)
	if err != nil {
		return "", apperrors.Internal("Failed to store invoice", err)
	}
	if !won {
		// Another request persisted a URL first; serve that one.
		slog.Debug("invoice url already set", "order_id", order.ID)
		stored, err := u.orders.FindByID(ctx, order.ID)
		if err != nil {
			return "", apperrors.Internal("Failed to store invoice", err)
		}
		return stored.InvoiceURL, nil
	}
	return url, nil
}
