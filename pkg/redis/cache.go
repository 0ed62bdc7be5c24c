package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// ErrCacheMiss is returned by ProductCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ProductCache stores product documents as JSON under product:{id}.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func ProductKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (c *ProductCache) Get(ctx context.Context, id string) (*models.Product, error) {
	productJSON, err := c.client.Get(ctx, ProductKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, errors.Wrapf(err, "failed to read product %s from cache", id)
	}

	var product models.Product
	if err := json.Unmarshal(productJSON, &product); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal product")
	}

	return &product, nil
}

func (c *ProductCache) Set(ctx context.Context, product *models.Product) error {
	productJSON, err := json.Marshal(product)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal product %s", product.ID.Hex())
	}

	if err := c.client.Set(ctx, ProductKey(product.ID.Hex()), productJSON, c.ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to cache product %s", product.ID.Hex())
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, ProductKey(id)).Err(); err != nil {
		return errors.Wrapf(err, "failed to remove product %s from cache", id)
	}
	return nil
}
