package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"veg-catering/catering-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

const catalogKeyPrefix = "catalog:"

// RedisCatalogCache stores catalog lists as JSON with a fixed TTL.
type RedisCatalogCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{Client: client, TTL: ttl}
}

var _ service.CatalogCache = (*RedisCatalogCache)(nil)

func (c *RedisCatalogCache) CuisinesKey() string {
	return catalogKeyPrefix + "cuisines"
}

func (c *RedisCatalogCache) DishesKey(cuisineID int) string {
	if cuisineID == 0 {
		return catalogKeyPrefix + "dishes:all"
	}
	return catalogKeyPrefix + "dishes:cuisine:" + strconv.Itoa(cuisineID)
}

func (c *RedisCatalogCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	payload, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}
