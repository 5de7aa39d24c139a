package in_memory

import (
	"context"
	"sync"

	"github.com/nkalinina/papertrade/internal/domain"
	"github.com/nkalinina/papertrade/internal/port"
)

// Cache is the in-process MarketCache used in tests and when no redis address
// is configured.
type Cache struct {
	mu      sync.Mutex
	candles map[string][]domain.Candle
	tickers map[string]*domain.Ticker
}

var _ port.MarketCache = (*Cache)(nil)

func NewCache() *Cache {
	return &Cache{
		candles: make(map[string][]domain.Candle),
		tickers: make(map[string]*domain.Ticker),
	}
}

func (c *Cache) SetCandles(ctx context.Context, pair, interval string, candles []domain.Candle) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]domain.Candle, len(candles))
	copy(cp, candles)
	c.candles[pair+":"+interval] = cp
	return nil
}

func (c *Cache) GetCandles(ctx context.Context, pair, interval string) ([]domain.Candle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	candles, ok := c.candles[pair+":"+interval]
	if !ok {
		return nil, nil
	}
	cp := make([]domain.Candle, len(candles))
	copy(cp, candles)
	return cp, nil
}

func (c *Cache) SetTicker(ctx context.Context, t *domain.Ticker) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *t
	c.tickers[t.Pair] = &cp
	return nil
}

func (c *Cache) GetTicker(ctx context.Context, pair string) (*domain.Ticker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tickers[pair]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}
