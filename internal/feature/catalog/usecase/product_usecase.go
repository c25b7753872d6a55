// Package usecase implements the business logic for the catalog feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/feature/catalog/domain/entity"
)

const (
	// ProductsPerPage is the catalog page size.
	ProductsPerPage = 8

	// maxImageSize caps product image uploads at 5MB.
	maxImageSize = 5 * 1024 * 1024
)

// ErrProductNotFound is returned when no product matches the given criteria.
// Owner-scoped lookups also return it for products owned by someone else,
// so existence of another user's product is not revealed.
var ErrProductNotFound = apperrors.NotFound("Product not found")

// acceptedImageTypes are the MIME types allowed for product images.
var acceptedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

// ProductRepository abstracts the persistence layer for products.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, p *entity.Product) error

	// FindByID retrieves a product. Returns ErrProductNotFound on miss.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)

	// FindPage returns one page of products, newest first, with the total count.
	FindPage(ctx context.Context, page, perPage int) ([]entity.Product, int64, error)

	// FindPageByOwner is FindPage restricted to one owning user.
	FindPageByOwner(ctx context.Context, ownerID uint, page, perPage int) ([]entity.Product, int64, error)

	// Save writes back a mutated product.
	Save(ctx context.Context, p *entity.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, id uint) error
}

// ObjectStore is where product images live.
type ObjectStore interface {
	// Upload stores a blob and returns its durable URL.
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)

	// Delete releases a previously uploaded blob by its URL.
	Delete(ctx context.Context, url string) error

	// ImageKey derives a fresh storage key for an image upload.
	ImageKey(ext string) string
}

// CartPruner removes cart lines referencing a product, across all users.
// Implemented by the cart feature's adapter; used when a product is deleted.
type CartPruner interface {
	RemoveProductLines(ctx context.Context, productID uint) error
}

// ImageUpload is an in-memory product image received over multipart.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// CreateInput is the input for product creation.
type CreateInput struct {
	Name        string
	Price       float64
	Description string
}

// UpdateInput is the input for editing a product. The image is optional.
type UpdateInput struct {
	ID          uint
	Name        string
	Price       float64
	Description string
}

// productUsecase implements the catalog business logic.
type productUsecase struct {
	products ProductRepository
	store    ObjectStore
	carts    CartPruner
}

// NewProductUsecase creates a new instance of productUsecase.
func NewProductUsecase(products ProductRepository, store ObjectStore, carts CartPruner) *productUsecase {
	return &productUsecase{products: products, store: store, carts: carts}
}

// validateInput checks the shared create/edit business rules.
func validateInput(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation("Product name is required")
	}
	if price <= 0 {
		return apperrors.Validation("Price must be greater than 0")
	}
	return nil
}

// validateImage checks the upload against the accepted types and size cap,
// returning the file extension for the storage key.
func validateImage(img ImageUpload) (string, error) {
	ext, ok := acceptedImageTypes[img.ContentType]
	if !ok {
		return "", apperrors.Validation(fmt.Sprintf("Only image files are allowed: %s", img.ContentType))
	}
	if len(img.Data) == 0 {
		return "", apperrors.Validation("Image file is required")
	}
	if len(img.Data) > maxImageSize {
		return "", apperrors.Validation("Image file exceeds the 5MB limit")
	}
	return ext, nil
}

// List returns one page of the public catalog.
func (u *productUsecase) List(ctx context.Context, page int) (*entity.Page, error) {
	if page < 1 {
		page = 1
	}
	products, total, err := u.products.FindPage(ctx, page, ProductsPerPage)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve products", err)
	}
	return buildPage(products, total, page), nil
}

// ListByOwner returns one page of the products created by the given user.
func (u *productUsecase) ListByOwner(ctx context.Context, ownerID uint, page int) (*entity.Page, error) {
	if page < 1 {
		page = 1
	}
	products, total, err := u.products.FindPageByOwner(ctx, ownerID, page, ProductsPerPage)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve products", err)
	}
	return buildPage(products, total, page), nil
}

// buildPage assembles the pagination envelope.
func buildPage(products []entity.Product, total int64, page int) *entity.Page {
	totalPages := int((total + ProductsPerPage - 1) / ProductsPerPage)
	if products == nil {
		products = []entity.Product{}
	}
	return &entity.Page{
		Products:      products,
		TotalPages:    totalPages,
		TotalProducts: total,
		CurrentPage:   page,
	}
}

// Get retrieves a single product.
func (u *productUsecase) Get(ctx context.Context, id uint) (*entity.Product, error) {
	return u.products.FindByID(ctx, id)
}

// Create validates the input, uploads the image and persists the product
// under the given owner.
func (u *productUsecase) Create(ctx context.Context, ownerID uint, input CreateInput, image ImageUpload) (*entity.Product, error) {
	if err := validateInput(input.Name, input.Price); err != nil {
		return nil, err
	}
	ext, err := validateImage(image)
	if err != nil {
		return nil, err
	}

	url, err := u.store.Upload(ctx, u.store.ImageKey(ext), image.ContentType, image.Data)
	if err != nil {
		return nil, apperrors.Internal("Failed to upload image", err)
	}

	product := &entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    url,
		UserID:      ownerID,
	}
	if err := u.products.Create(ctx, product); err != nil {
		return nil, apperrors.Internal("Failed to create product", err)
	}
	return product, nil
}

// Update edits a product owned by ownerID, optionally replacing the image.
// A product owned by someone else reads as not found.
func (u *productUsecase) Update(ctx context.Context, ownerID uint, input UpdateInput, image *ImageUpload) (*entity.Product, error) {
	if err := validateInput(input.Name, input.Price); err != nil {
		return nil, err
	}

	product, err := u.ownedProduct(ctx, ownerID, input.ID)
	if err != nil {
		return nil, err
	}

	var oldURL string
	if image != nil {
		ext, err := validateImage(*image)
		if err != nil {
			return nil, err
		}
		url, err := u.store.Upload(ctx, u.store.ImageKey(ext), image.ContentType, image.Data)
		if err != nil {
			return nil, apperrors.Internal("Failed to upload image", err)
		}
		oldURL = product.ImageURL
		product.ImageURL = url
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	product.Description = input.Description
	if err := u.products.Save(ctx, product); err != nil {
		return nil, apperrors.Internal("Failed to update product", err)
	}

	// Release the replaced image only once the new URL is durably stored;
	// a failed save must not leave the record pointing at a deleted object.
	if oldURL != "" {
		if err := u.store.Delete(ctx, oldURL); err != nil {
			slog.Warn("failed to release replaced product image", "error", err, "product_id", product.ID)
		}
	}
	return product, nil
}

// Delete removes a product owned by ownerID. The cascade removes every cart
// line referencing it and releases the stored image; both are best-effort
// relative to the record deletion itself.
func (u *productUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	product, err := u.ownedProduct(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := u.carts.RemoveProductLines(ctx, id); err != nil {
		return apperrors.Internal("Failed to delete product", err)
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return apperrors.Internal("Failed to delete product", err)
	}

	if product.ImageURL != "" {
		if err := u.store.Delete(ctx, product.ImageURL); err != nil {
			slog.Warn("failed to release product image", "error", err, "product_id", id)
		}
	}
	return nil
}

// ownedProduct loads a product and verifies ownership, reporting not-found
// for both a missing product and one owned by another user.
func (u *productUsecase) ownedProduct(ctx context.Context, ownerID, id uint) (*entity.Product, error) {
	product, err := u.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to retrieve product", err)
	}
	if product.UserID != ownerID {
		return nil, ErrProductNotFound
	}
	return product, nil
}
