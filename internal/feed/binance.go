package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"github.com/nkalinina/papertrade/internal/domain"
	"github.com/nkalinina/papertrade/internal/port"
)

// BinanceSource serves market data from the public Binance spot API. No API
// keys are needed for klines and prices.
type BinanceSource struct {
	client *binance.Client
}

var _ port.PriceSource = (*BinanceSource)(nil)

func NewBinanceSource() *BinanceSource {
	return &BinanceSource{client: binance.NewClient("", "")}
}

// symbol turns a display pair like "BTC/USDT" into the exchange symbol.
func symbol(pair string) string {
	return strings.ReplaceAll(pair, "/", "")
}

func (s *BinanceSource) Candles(ctx context.Context, pair, interval string, limit int) ([]domain.Candle, error) {
	klines, err := s.client.NewKlinesService().
		Symbol(symbol(pair)).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}

	candles := make([]domain.Candle, 0, len(klines))
	for _, k := range klines {
		c, err := convertKline(k)
		if err != nil {
			return nil, err
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func (s *BinanceSource) LastPrice(ctx context.Context, pair string) (decimal.Decimal, error) {
	prices, err := s.client.NewListPricesService().Symbol(symbol(pair)).Do(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance price: %w", err)
	}
	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("binance price: empty response for %s", pair)
	}
	return decimal.NewFromString(prices[0].Price)
}

func convertKline(k *binance.Kline) (domain.Candle, error) {
	var (
		c   domain.Candle
		err error
	)
	if c.Open, err = decimal.NewFromString(k.Open); err != nil {
		return c, fmt.Errorf("binance kline open: %w", err)
	}
	if c.High, err = decimal.NewFromString(k.High); err != nil {
		return c, fmt.Errorf("binance kline high: %w", err)
	}
	if c.Low, err = decimal.NewFromString(k.Low); err != nil {
		return c, fmt.Errorf("binance kline low: %w", err)
	}
	if c.Close, err = decimal.NewFromString(k.Close); err != nil {
		return c, fmt.Errorf("binance kline close: %w", err)
	}
	if c.Volume, err = decimal.NewFromString(k.Volume); err != nil {
		return c, fmt.Errorf("binance kline volume: %w", err)
	}
	c.OpenTime = time.UnixMilli(k.OpenTime)
	return c, nil
}
