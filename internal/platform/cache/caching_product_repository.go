// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/feature/catalog/usecase"
)

// CachingProductRepository decorates a ProductRepository with Redis caching
// of catalog pages. It implements the decorator pattern, transparently
// adding caching without modifying the underlying repository. Any product
// mutation invalidates the whole namespace, so pages never serve stale
// prices for longer than the mutation takes.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// cachedPage is the serialized form of one page query result.
type cachedPage struct {
	Products []entity.Product `json:"products"`
	Total    int64            `json:"total"`
}

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "products".
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "products"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a product and invalidates the cached pages.
func (c *CachingProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID bypasses the cache; single-product reads go straight through.
func (c *CachingProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	return c.inner.FindByID(ctx, id)
}

// FindPage retrieves a catalog page, checking the cache first then falling
// back to the database.
func (c *CachingProductRepository) FindPage(ctx context.Context, page, perPage int) ([]entity.Product, int64, error) {
	return c.findPage(ctx, c.pageKey(0, page, perPage), func() ([]entity.Product, int64, error) {
		return c.inner.FindPage(ctx, page, perPage)
	})
}

// FindPageByOwner retrieves an owner-scoped page with the same read-through policy.
func (c *CachingProductRepository) FindPageByOwner(ctx context.Context, ownerID uint, page, perPage int) ([]entity.Product, int64, error) {
	return c.findPage(ctx, c.pageKey(ownerID, page, perPage), func() ([]entity.Product, int64, error) {
		return c.inner.FindPageByOwner(ctx, ownerID, page, perPage)
	})
}

// Save writes back a product and invalidates the cached pages.
func (c *CachingProductRepository) Save(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Save(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a product and invalidates the cached pages.
func (c *CachingProductRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingProductRepository) findPage(ctx context.Context, key string, load func() ([]entity.Product, int64, error)) ([]entity.Product, int64, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out cachedPage
		if err := json.Unmarshal(b, &out); err == nil {
			return out.Products, out.Total, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	products, total, err := load()
	if err != nil {
		return nil, 0, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(cachedPage{Products: products, Total: total}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return products, total, nil
}

// pageKey generates the cache key for one page query. Owner 0 is the
// public catalog.
func (c *CachingProductRepository) pageKey(ownerID uint, page, perPage int) string {
	return fmt.Sprintf("%s:page:%d:%d:%d", c.namespace, ownerID, page, perPage)
}

// invalidate deletes every cached page in the namespace using SCAN.
// Best effort: a failed invalidation only shortens to the TTL.
func (c *CachingProductRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	pattern := c.namespace + ":page:*"
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = c.rdb.Del(ctx, keys...).Err()
		}
		cursor = cur
		if cursor == 0 {
			return
		}
	}
}
