// Package dto defines data transfer objects for the cart feature's HTTP transport layer.
package dto

// AddToCartReq represents the request body for the /api/addToCart endpoint.
// Quantity is a pointer so an omitted field (defaults to 1) can be told
// apart from an explicit zero (rejected).
type AddToCartReq struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  *int `json:"quantity"`
}
