package port

import (
	"context"

	"github.com/nkalinina/papertrade/internal/domain"
)

// MarketCache stores the most recent chart data so UI reloads do not hit the
// upstream feed. Implementations must treat misses as (nil, nil).
type MarketCache interface {
	SetCandles(ctx context.Context, pair, interval string, candles []domain.Candle) error
	GetCandles(ctx context.Context, pair, interval string) ([]domain.Candle, error)
	SetTicker(ctx context.Context, t *domain.Ticker) error
	GetTicker(ctx context.Context, pair string) (*domain.Ticker, error)
}
