package in_memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nkalinina/papertrade/internal/domain"
)

func TestCacheMissReturnsNil(t *testing.T) {
	c := NewCache()

	candles, err := c.GetCandles(context.Background(), "BTC/USDT", "15m")
	require.NoError(t, err)
	require.Nil(t, candles)

	tick, err := c.GetTicker(context.Background(), "BTC/USDT")
	require.NoError(t, err)
	require.Nil(t, tick)
}

func TestCacheRoundTripIsolated(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	in := []domain.Candle{{Close: decimal.NewFromInt(100), OpenTime: time.Now()}}
	require.NoError(t, c.SetCandles(ctx, "BTC/USDT", "15m", in))

	out, err := c.GetCandles(ctx, "BTC/USDT", "15m")
	require.NoError(t, err)
	require.Len(t, out, 1)

	// returned slice is a copy
	out[0].Close = decimal.NewFromInt(1)
	again, err := c.GetCandles(ctx, "BTC/USDT", "15m")
	require.NoError(t, err)
	require.True(t, again[0].Close.Equal(decimal.NewFromInt(100)))

	tick := &domain.Ticker{Pair: "BTC/USDT", Price: decimal.NewFromInt(100), Time: time.Now()}
	require.NoError(t, c.SetTicker(ctx, tick))
	got, err := c.GetTicker(ctx, "BTC/USDT")
	require.NoError(t, err)
	require.True(t, got.Price.Equal(tick.Price))
}
