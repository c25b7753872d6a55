// Package pdf renders order invoices as PDF documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"storefront_backend/internal/feature/orders/domain/entity"
	"storefront_backend/internal/feature/orders/usecase"
)

// InvoiceRenderer produces a one-page invoice for an order snapshot.
// Rendering is deterministic for a given order, so repeated renders of
// the same order yield equivalent documents.
type InvoiceRenderer struct{}

// NewInvoiceRenderer creates a new InvoiceRenderer.
func NewInvoiceRenderer() *InvoiceRenderer {
	return &InvoiceRenderer{}
}

// Render builds the invoice PDF from the order's immutable item snapshots.
func (r *InvoiceRenderer) Render(order *entity.Order, purchaserName string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, fmt.Sprintf("Invoice for Order #%d", order.ID))
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, fmt.Sprintf("Customer: %s", purchaserName))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02")))
	doc.Ln(12)

	for i, item := range order.Items {
		doc.Cell(0, 6, fmt.Sprintf("%d. %s - Qty: %d x $%.2f = $%.2f",
			i+1, item.ProductName, item.Quantity, item.ProductPrice, item.LineTotal()))
		doc.Ln(6)
	}

	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, fmt.Sprintf("Total: $%.2f", order.TotalPrice), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice for order %d: %w", order.ID, err)
	}
	return buf.Bytes(), nil
}

// Compile-time interface check
var _ usecase.InvoiceRenderer = (*InvoiceRenderer)(nil)
