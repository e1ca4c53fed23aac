package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss - ключ отсутствует в кеше
var ErrCacheMiss = errors.New("cache miss")

// Cache - тонкая обертка над Redis для cache-aside сценариев.
// Nil-безопасна: при отсутствии сконфигурированного Redis все операции
// возвращают промах, и вызывающий код идет в БД.
type Cache struct {
	client *redis.Client
	ctx    context.Context
}

func New(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		ctx:    context.Background(),
	}
}

// GetJSON читает значение по ключу и десериализует его в dest
func (c *Cache) GetJSON(key string, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheMiss
	}

	raw, err := c.client.Get(c.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(raw), dest)
}

// SetJSON сериализует value и кладет его по ключу с TTL
func (c *Cache) SetJSON(key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(c.ctx, key, raw, ttl).Err()
}

// Invalidate удаляет ключ
func (c *Cache) Invalidate(key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(c.ctx, key).Err()
}
