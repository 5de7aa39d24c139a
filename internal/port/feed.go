package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nkalinina/papertrade/internal/domain"
)

// PriceSource is the upstream market data provider.
type PriceSource interface {
	Candles(ctx context.Context, pair, interval string, limit int) ([]domain.Candle, error)
	LastPrice(ctx context.Context, pair string) (decimal.Decimal, error)
}
