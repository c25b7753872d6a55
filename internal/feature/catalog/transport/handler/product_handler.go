// Package handler provides the HTTP handlers for the catalog feature,
// covering both the public listing and the admin product-management surface.
package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/feature/catalog/usecase"
	"storefront_backend/internal/platform/session"
)

// ProductUsecase defines the catalog operations this handler depends on.
type ProductUsecase interface {
	List(ctx context.Context, page int) (*entity.Page, error)
	ListByOwner(ctx context.Context, ownerID uint, page int) (*entity.Page, error)
	Get(ctx context.Context, id uint) (*entity.Product, error)
	Create(ctx context.Context, ownerID uint, input usecase.CreateInput, image usecase.ImageUpload) (*entity.Product, error)
	Update(ctx context.Context, ownerID uint, input usecase.UpdateInput, image *usecase.ImageUpload) (*entity.Product, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// ProductHandler handles catalog and admin product endpoints.
type ProductHandler struct {
	products ProductUsecase
}

// NewProductHandler creates a new instance of ProductHandler.
func NewProductHandler(products ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// pageParam parses ?page=N, defaulting to 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.Validation("Invalid product ID")
	}
	return uint(id), nil
}

// List handles GET /api/getProducts, the public paginated catalog.
func (h *ProductHandler) List(c *gin.Context) {
	page, err := h.products.List(c.Request.Context(), pageParam(c))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Products retrieved", gin.H{
		"products":      page.Products,
		"totalPages":    page.TotalPages,
		"totalProducts": page.TotalProducts,
		"currentPage":   page.CurrentPage,
	})
}

// Get handles GET /api/getProduct/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		api.Fail(c, err)
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Product retrieved", gin.H{"product": product})
}

// ListOwn handles GET /api/admin/getProducts, listing the products created
// by the authenticated user.
func (h *ProductHandler) ListOwn(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	page, err := h.products.ListByOwner(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Products retrieved", gin.H{
		"products":      page.Products,
		"totalPages":    page.TotalPages,
		"totalProducts": page.TotalProducts,
		"currentPage":   page.CurrentPage,
	})
}

// readImage loads a multipart file into an ImageUpload.
func readImage(fh *multipart.FileHeader) (*usecase.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.Validation("Image file could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.Validation("Image file could not be read")
	}
	return &usecase.ImageUpload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

// parsePrice reads the multipart price field.
func parsePrice(c *gin.Context) (float64, error) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		return 0, apperrors.Validation("Price must be a number")
	}
	return price, nil
}

// AddProduct handles POST /api/admin/addProduct (multipart: name, price,
// description, image).
func (h *ProductHandler) AddProduct(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}

	price, err := parsePrice(c)
	if err != nil {
		api.Fail(c, err)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		api.Fail(c, apperrors.Validation("Image file is required"))
		return
	}
	image, err := readImage(fh)
	if err != nil {
		api.Fail(c, err)
		return
	}

	input := usecase.CreateInput{
		Name:        c.PostForm("name"),
		Price:       price,
		Description: c.PostForm("description"),
	}
	product, err := h.products.Create(c.Request.Context(), userID, input, *image)
	if err != nil {
		api.Fail(c, err)
		return
	}
	slog.Info("product created", "product_id", product.ID, "user_id", userID)
	api.OK(c, http.StatusCreated, "Product added", gin.H{"product": product})
}

// EditProduct handles PATCH /api/admin/editProduct (multipart; image optional).
func (h *ProductHandler) EditProduct(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}

	id, err := strconv.ParseUint(c.PostForm("id"), 10, 64)
	if err != nil {
		api.Fail(c, apperrors.Validation("Invalid product ID"))
		return
	}
	price, err := parsePrice(c)
	if err != nil {
		api.Fail(c, err)
		return
	}

	var image *usecase.ImageUpload
	if fh, err := c.FormFile("image"); err == nil {
		image, err = readImage(fh)
		if err != nil {
			api.Fail(c, err)
			return
		}
	}

	input := usecase.UpdateInput{
		ID:          uint(id),
		Name:        c.PostForm("name"),
		Price:       price,
		Description: c.PostForm("description"),
	}
	product, err := h.products.Update(c.Request.Context(), userID, input, image)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Product updated", gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/admin/deleteProduct/:id. Deletion
// cascades cart lines and releases the stored image.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		api.Fail(c, apperrors.Unauthorized("Not authenticated"))
		return
	}
	id, err := idParam(c)
	if err != nil {
		api.Fail(c, err)
		return
	}
	if err := h.products.Delete(c.Request.Context(), userID, id); err != nil {
		api.Fail(c, err)
		return
	}
	slog.Info("product deleted", "product_id", id, "user_id", userID)
	api.OK(c, http.StatusOK, "Product deleted", gin.H{"deletedId": id})
}
