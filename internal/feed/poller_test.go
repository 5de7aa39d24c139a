package feed

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nkalinina/papertrade/internal/adapter/in_memory"
	"github.com/nkalinina/papertrade/internal/domain"
)

type fakeSource struct {
	price   decimal.Decimal
	candles []domain.Candle
	err     error
}

func (s *fakeSource) Candles(ctx context.Context, pair, interval string, limit int) ([]domain.Candle, error) {
	return s.candles, s.err
}

func (s *fakeSource) LastPrice(ctx context.Context, pair string) (decimal.Decimal, error) {
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return s.price, nil
}

type recordingSink struct {
	prices []decimal.Decimal
}

func (r *recordingSink) OnPriceUpdate(price decimal.Decimal) []*domain.Order {
	r.prices = append(r.prices, price)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPollDeliversPriceToSink(t *testing.T) {
	source := &fakeSource{
		price: decimal.NewFromInt(42000),
		candles: []domain.Candle{
			{Close: decimal.NewFromInt(42000), OpenTime: time.Now()},
		},
	}
	sink := &recordingSink{}
	cache := in_memory.NewCache()
	p := NewPoller(source, cache, sink, "BTC/USDT", "15m", time.Second, testLogger())

	p.poll(context.Background())

	require.Len(t, sink.prices, 1)
	require.True(t, sink.prices[0].Equal(decimal.NewFromInt(42000)))

	candles, err := cache.GetCandles(context.Background(), "BTC/USDT", "15m")
	require.NoError(t, err)
	require.Len(t, candles, 1)

	tick, err := cache.GetTicker(context.Background(), "BTC/USDT")
	require.NoError(t, err)
	require.NotNil(t, tick)
	require.True(t, tick.Price.Equal(decimal.NewFromInt(42000)))
}

func TestPollErrorSkipsSink(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream down")}
	sink := &recordingSink{}
	p := NewPoller(source, nil, sink, "BTC/USDT", "15m", time.Second, testLogger())

	p.poll(context.Background())
	require.Empty(t, sink.prices)

	// recovery on a later tick
	source.err = nil
	source.price = decimal.NewFromInt(100)
	p.poll(context.Background())
	require.Len(t, sink.prices, 1)
}

func TestPollWorksWithoutCache(t *testing.T) {
	source := &fakeSource{price: decimal.NewFromInt(7)}
	sink := &recordingSink{}
	p := NewPoller(source, nil, sink, "BTC/USDT", "15m", time.Second, testLogger())

	p.poll(context.Background())
	require.Len(t, sink.prices, 1)
}

func TestSubscribeReceivesTicks(t *testing.T) {
	source := &fakeSource{price: decimal.NewFromInt(42000)}
	sink := &recordingSink{}
	p := NewPoller(source, nil, sink, "BTC/USDT", "15m", time.Second, testLogger())

	ticks, cancel := p.Subscribe()
	defer cancel()

	p.poll(context.Background())

	select {
	case tick := <-ticks:
		require.Equal(t, "BTC/USDT", tick.Pair)
		require.True(t, tick.Price.Equal(decimal.NewFromInt(42000)))
	case <-time.After(time.Second):
		t.Fatal("no tick received")
	}
}

func TestCancelledSubscriptionIsClosed(t *testing.T) {
	source := &fakeSource{price: decimal.NewFromInt(1)}
	p := NewPoller(source, nil, &recordingSink{}, "BTC/USDT", "15m", time.Second, testLogger())

	ticks, cancel := p.Subscribe()
	cancel()
	cancel() // second cancel is a no-op

	_, ok := <-ticks
	require.False(t, ok)

	// publishing after cancel must not panic
	p.poll(context.Background())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	source := &fakeSource{price: decimal.NewFromInt(1)}
	sink := &recordingSink{}
	p := NewPoller(source, nil, sink, "BTC/USDT", "15m", 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
	require.NotEmpty(t, sink.prices)
}
