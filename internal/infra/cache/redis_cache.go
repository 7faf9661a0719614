package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const processedTTL = 30 * 24 * time.Hour

// RedisCache deduplicates payment events across restarts and replicas.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// MarkProcessed claims the payment id. SetNX makes the claim atomic: only
// the first delivery of a given payment gets true.
func (c *RedisCache) MarkProcessed(ctx context.Context, paymentID string) (bool, error) {
	return c.client.SetNX(ctx, processedKey(paymentID), 1, processedTTL).Result()
}

// Release frees a claim whose conversion failed, so the next delivery of
// the same payment id gets another shot.
func (c *RedisCache) Release(ctx context.Context, paymentID string) error {
	return c.client.Del(ctx, processedKey(paymentID)).Err()
}

func processedKey(paymentID string) string {
	return "payments:processed:" + paymentID
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
