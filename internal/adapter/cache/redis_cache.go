package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nkalinina/papertrade/internal/domain"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{
		client: rdb,
		ttl:    ttl,
	}
}

func candlesKey(pair, interval string) string { return "candles:" + pair + ":" + interval }
func tickerKey(pair string) string            { return "ticker:" + pair }

func (c *RedisCache) SetCandles(ctx context.Context, pair, interval string, candles []domain.Candle) error {
	b, err := json.Marshal(candles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, candlesKey(pair, interval), b, c.ttl).Err()
}

func (c *RedisCache) GetCandles(ctx context.Context, pair, interval string) ([]domain.Candle, error) {
	b, err := c.client.Get(ctx, candlesKey(pair, interval)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var candles []domain.Candle
	if err := json.Unmarshal(b, &candles); err != nil {
		return nil, err
	}
	return candles, nil
}

func (c *RedisCache) SetTicker(ctx context.Context, t *domain.Ticker) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tickerKey(t.Pair), b, c.ttl).Err()
}

func (c *RedisCache) GetTicker(ctx context.Context, pair string) (*domain.Ticker, error) {
	b, err := c.client.Get(ctx, tickerKey(pair)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var t domain.Ticker
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
