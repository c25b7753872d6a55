package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"storefront_backend/internal/apperrors"
	authentity "storefront_backend/internal/feature/auth/domain/entity"
	cartentity "storefront_backend/internal/feature/cart/domain/entity"
	"storefront_backend/internal/feature/orders/domain/entity"
)

// OrderRepository abstracts the persistence layer for orders.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
// The narrow surface enforces immutability: orders can be created and their
// invoice URL set once, nothing else.
type OrderRepository interface {
	// Create persists the order with its item snapshots in one transaction.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items. Returns ErrOrderNotFound on miss.
	FindByID(ctx context.Context, id uint) (*entity.Order, error)

	// FindByUser retrieves all of a user's orders, newest first.
	FindByUser(ctx context.Context, userID uint) ([]entity.Order, error)

	// SetInvoiceURL persists the invoice URL only if none is stored yet.
	// Returns false when another writer got there first.
	SetInvoiceURL(ctx context.Context, orderID uint, url string) (bool, error)
}

// CartService is the slice of the cart feature the pipeline consumes.
type CartService interface {
	GetPopulatedCart(ctx context.Context, userID uint) (*cartentity.PopulatedCart, error)
	ClearCart(ctx context.Context, userID uint) error
}

// UserReader resolves the purchaser for checkout and invoices.
type UserReader interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// CheckoutLine is one line item passed to the payment collaborator.
// UnitAmount is the unit price in minor currency units (cents).
type CheckoutLine struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// CheckoutRequest is the input for creating a hosted checkout session.
type CheckoutRequest struct {
	Reference     string
	CustomerEmail string
	Lines         []CheckoutLine
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the hosted payment session the client is redirected to.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutClient initiates a hosted checkout with the payment collaborator.
// The pipeline does not wait for payment completion; webhook/redirect
// handling is the collaborator's concern.
type CheckoutClient interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

// OrderEventPublisher announces order lifecycle events. Always best-effort.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *entity.Order) error
}

// Config carries the checkout redirect targets.
type Config struct {
	CheckoutSuccessURL string
	CheckoutCancelURL  string
}

// orderUsecase implements the order pipeline and invoice generation.
type orderUsecase struct {
	orders   OrderRepository
	carts    CartService
	users    UserReader
	checkout CheckoutClient
	store    ObjectStore
	renderer InvoiceRenderer
	events   OrderEventPublisher
	cfg      Config
}

// NewOrderUsecase creates a new instance of orderUsecase.
// events may be nil; order events are then skipped.
func NewOrderUsecase(
	orders OrderRepository,
	carts CartService,
	users UserReader,
	checkout CheckoutClient,
	store ObjectStore,
	renderer InvoiceRenderer,
	events OrderEventPublisher,
	cfg Config,
) *orderUsecase {
	return &orderUsecase{
		orders:   orders,
		carts:    carts,
		users:    users,
		checkout: checkout,
		store:    store,
		renderer: renderer,
		events:   events,
		cfg:      cfg,
	}
}

// toCents converts a price to minor currency units for the payment provider.
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// PlaceOrder converts the user's non-empty cart into an immutable order and
// initiates a hosted checkout session.
//
// Ordering: the snapshot is persisted before any external call, so the order
// reflects prices at the moment of commitment; the cart is cleared only
// after the checkout session is created, never before the snapshot exists.
// If checkout initiation fails the cart is retained and the persisted order
// remains as an abandoned attempt.
func (u *orderUsecase) PlaceOrder(ctx context.Context, userID uint) (*CheckoutSession, error) {
	cart, err := u.carts.GetPopulatedCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to place order", err)
	}

	order := snapshotOrder(userID, cart)
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Internal("Failed to place order", err)
	}

	session, err := u.checkout.CreateSession(ctx, u.checkoutRequest(user.Email, order))
	if err != nil {
		slog.Error("checkout session failed", "error", err, "order_id", order.ID)
		return nil, apperrors.Internal("Failed to start checkout", err)
	}

	if err := u.carts.ClearCart(ctx, userID); err != nil {
		// The order and checkout session already exist; a stale cart is
		// recoverable by the user, so log and continue.
		slog.Warn("failed to clear cart after order", "error", err, "order_id", order.ID)
	}

	if u.events != nil {
		if err := u.events.PublishOrderCreated(ctx, order); err != nil {
			slog.Warn("order event publish failed", "error", err, "order_id", order.ID)
		}
	}

	return session, nil
}

// snapshotOrder copies each populated cart line into an immutable order
// item at its current price and sums the total.
func snapshotOrder(userID uint, cart *cartentity.PopulatedCart) *entity.Order {
	order := &entity.Order{UserID: userID}
	for _, line := range cart.Items {
		item := entity.Item{
			ProductID:    line.ProductID,
			ProductName:  line.Product.Name,
			ProductPrice: line.Product.Price,
			ImageURL:     line.Product.ImageURL,
			Quantity:     line.Quantity,
		}
		order.Items = append(order.Items, item)
		order.TotalPrice += item.LineTotal()
	}
	return order
}

// checkoutRequest builds the payment-collaborator payload from the snapshot.
func (u *orderUsecase) checkoutRequest(email string, order *entity.Order) CheckoutRequest {
	req := CheckoutRequest{
		Reference:     orderReference(order.ID),
		CustomerEmail: email,
		SuccessURL:    u.cfg.CheckoutSuccessURL,
		CancelURL:     u.cfg.CheckoutCancelURL,
	}
	for _, item := range order.Items {
		req.Lines = append(req.Lines, CheckoutLine{
			Name:       item.ProductName,
			UnitAmount: toCents(item.ProductPrice),
			Quantity:   item.Quantity,
		})
	}
	return req
}

// ListOrders returns the user's orders, newest first.
func (u *orderUsecase) ListOrders(ctx context.Context, userID uint) ([]entity.Order, error) {
	orders, err := u.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve orders", err)
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return orders, nil
}

// GetOrder returns one of the user's orders. An order owned by another user
// reads as not found, matching the owner-scoped lookup of the order list.
func (u *orderUsecase) GetOrder(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to retrieve order", err)
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
