package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mudgalz/foodie-be/internal/domain"
)

// RedisCache is a best-effort read cache for restaurant documents. Misses
// and errors both fall through to Postgres.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func restaurantKey(id int) string {
	return "restaurant:" + strconv.Itoa(id)
}

func (c *RedisCache) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, bool) {
	raw, err := c.Client.Get(ctx, restaurantKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var rest domain.Restaurant
	if err := json.Unmarshal(raw, &rest); err != nil {
		return nil, false
	}
	return &rest, true
}

func (c *RedisCache) SetRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	payload, err := json.Marshal(rest)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, restaurantKey(rest.ID), payload, c.TTL).Err()
}

func (c *RedisCache) InvalidateRestaurant(ctx context.Context, id int) error {
	return c.Client.Del(ctx, restaurantKey(id)).Err()
}
