package feed

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/nkalinina/papertrade/internal/domain"
	"github.com/nkalinina/papertrade/internal/metrics"
	"github.com/nkalinina/papertrade/internal/port"
)

// PriceSink is the engine-facing side of the feed: each tick the poller hands
// the latest traded price to the sink.
type PriceSink interface {
	OnPriceUpdate(price decimal.Decimal) []*domain.Order
}

// Poller periodically pulls the latest price from the source, pushes it into
// the sink, refreshes the candle cache and fans the ticker out to websocket
// subscribers. Upstream failures are logged and retried on the next tick; the
// sink never sees a failed poll.
type Poller struct {
	log      *logrus.Logger
	source   port.PriceSource
	cache    port.MarketCache // optional
	sink     PriceSink
	pair     string
	interval string // candle interval for the chart cache
	limit    int
	every    time.Duration

	mu   sync.Mutex
	subs map[chan domain.Ticker]struct{}
}

func NewPoller(source port.PriceSource, cache port.MarketCache, sink PriceSink, pair, interval string, every time.Duration, log *logrus.Logger) *Poller {
	return &Poller{
		log:      log,
		source:   source,
		cache:    cache,
		sink:     sink,
		pair:     pair,
		interval: interval,
		limit:    100,
		every:    every,
		subs:     make(map[chan domain.Ticker]struct{}),
	}
}

// Run blocks until ctx is cancelled. One poll happens immediately so the
// engine learns a price before the first interval elapses.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)
	t := time.NewTicker(p.every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			p.closeSubs()
			return
		case <-t.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	price, err := p.source.LastPrice(ctx, p.pair)
	if err != nil {
		metrics.FeedErrors.Inc()
		p.log.WithError(err).Warn("price poll failed")
		return
	}
	tick := domain.Ticker{Pair: p.pair, Price: price, Time: time.Now()}

	p.sink.OnPriceUpdate(price)
	metrics.FeedTicks.Inc()

	if p.cache != nil {
		if candles, err := p.source.Candles(ctx, p.pair, p.interval, p.limit); err != nil {
			metrics.FeedErrors.Inc()
			p.log.WithError(err).Warn("candle poll failed")
		} else {
			_ = p.cache.SetCandles(ctx, p.pair, p.interval, candles)
		}
		_ = p.cache.SetTicker(ctx, &tick)
	}

	p.publish(tick)
}

// Subscribe registers a ticker stream. The returned cancel func must be called
// when the consumer goes away. Slow consumers miss ticks instead of blocking
// the poll loop.
func (p *Poller) Subscribe() (<-chan domain.Ticker, func()) {
	ch := make(chan domain.Ticker, 8)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, ok := p.subs[ch]; ok {
			delete(p.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (p *Poller) publish(t domain.Ticker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ch := range p.subs {
		select {
		case ch <- t:
		default:
		}
	}
}

func (p *Poller) closeSubs() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ch := range p.subs {
		delete(p.subs, ch)
		close(ch)
	}
}
