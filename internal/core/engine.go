package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/nkalinina/papertrade/internal/domain"
	"github.com/nkalinina/papertrade/internal/metrics"
)

// Engine owns the virtual account: one balance, the order collection and the
// last-known market price. Every operation runs as one critical section under
// mu, so validation and reservation in PlaceOrder can never race with a fill
// or a cancel, and readers always observe balance and orders consistently.
type Engine struct {
	log  *logrus.Logger
	pair string

	mu        sync.Mutex
	balance   domain.Balance
	orders    []*domain.Order // insertion order, oldest first
	byID      map[string]*domain.Order
	lastPrice decimal.Decimal // zero until the first tick arrives
}

// NewEngine seeds the account with seedQuote of quote currency and no base
// asset. The market price starts unknown; MARKET orders are rejected until
// OnPriceUpdate has been called at least once.
func NewEngine(pair string, seedQuote decimal.Decimal, log *logrus.Logger) *Engine {
	return &Engine{
		log:  log,
		pair: pair,
		balance: domain.Balance{
			Quote: seedQuote,
			Base:  decimal.Zero,
		},
		byID: make(map[string]*domain.Order),
	}
}

// PlaceOrder validates the request, reserves funds and creates the order.
// Buy orders reserve quantity*price of quote currency, sell orders reserve the
// base quantity. MARKET orders execute immediately at the last-known price;
// LIMIT orders rest OPEN until a tick satisfies them or they are cancelled.
// On any error no state is mutated.
func (e *Engine) PlaceOrder(side domain.Side, orderType domain.OrderType, quantity, limitPrice decimal.Decimal) (*domain.Order, error) {
	if side != domain.Buy && side != domain.Sell {
		return nil, ErrInvalidOrderParams
	}
	if orderType != domain.Limit && orderType != domain.Market {
		return nil, ErrInvalidOrderParams
	}
	if !quantity.IsPositive() {
		return nil, ErrInvalidOrderParams
	}
	if orderType == domain.Limit && !limitPrice.IsPositive() {
		return nil, ErrInvalidOrderParams
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	price := limitPrice
	if orderType == domain.Market {
		if !e.lastPrice.IsPositive() {
			metrics.OrdersRejected.WithLabelValues("price_unavailable").Inc()
			return nil, ErrPriceUnavailable
		}
		price = e.lastPrice
	}
	notional := quantity.Mul(price)

	// Check and reserve in the same critical section, never as two steps.
	switch side {
	case domain.Buy:
		if e.balance.Quote.LessThan(notional) {
			metrics.OrdersRejected.WithLabelValues("insufficient_funds").Inc()
			return nil, ErrInsufficientFunds
		}
		e.balance.Quote = e.balance.Quote.Sub(notional)
	case domain.Sell:
		if e.balance.Base.LessThan(quantity) {
			metrics.OrdersRejected.WithLabelValues("insufficient_funds").Inc()
			return nil, ErrInsufficientFunds
		}
		e.balance.Base = e.balance.Base.Sub(quantity)
	}

	o := &domain.Order{
		ID:        uuid.NewString(),
		Pair:      e.pair,
		Side:      side,
		Type:      orderType,
		Price:     price,
		Quantity:  quantity,
		Notional:  notional,
		Status:    domain.Open,
		CreatedAt: time.Now(),
	}

	if orderType == domain.Market {
		o.Status = domain.Filled
		e.credit(o)
		metrics.OrdersFilled.WithLabelValues(string(side)).Inc()
	} else {
		metrics.OpenOrders.Inc()
	}

	e.orders = append(e.orders, o)
	e.byID[o.ID] = o

	metrics.OrdersPlaced.WithLabelValues(string(side), string(orderType)).Inc()
	e.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"side":     o.Side,
		"type":     o.Type,
		"price":    o.Price,
		"quantity": o.Quantity,
		"status":   o.Status,
	}).Info("order placed")

	return snapshotOrder(o), nil
}

// OnPriceUpdate records the new market price and fills every open limit order
// whose condition the price satisfies: buys at newPrice <= limit, sells at
// newPrice >= limit, both inclusive. Fills credit the order's frozen notional
// and quantity, never the triggering tick price, and all balance deltas are
// applied as one combined update. Returns the orders filled by this tick.
func (e *Engine) OnPriceUpdate(newPrice decimal.Decimal) []*domain.Order {
	if !newPrice.IsPositive() {
		e.log.WithField("price", newPrice).Warn("ignoring non-positive price tick")
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastPrice = newPrice
	metrics.LastPrice.Set(priceGauge(newPrice))

	var (
		filled     []*domain.Order
		quoteDelta = decimal.Zero
		baseDelta  = decimal.Zero
	)
	for _, o := range e.orders {
		if !o.IsOpen() || o.Type != domain.Limit {
			continue
		}
		crossed := (o.Side == domain.Buy && newPrice.LessThanOrEqual(o.Price)) ||
			(o.Side == domain.Sell && newPrice.GreaterThanOrEqual(o.Price))
		if !crossed {
			continue
		}
		o.Status = domain.Filled
		if o.Side == domain.Buy {
			baseDelta = baseDelta.Add(o.Quantity)
		} else {
			quoteDelta = quoteDelta.Add(o.Notional)
		}
		filled = append(filled, snapshotOrder(o))
		metrics.OrdersFilled.WithLabelValues(string(o.Side)).Inc()
		metrics.OpenOrders.Dec()
		e.log.WithFields(logrus.Fields{
			"order_id": o.ID,
			"side":     o.Side,
			"limit":    o.Price,
			"tick":     newPrice,
		}).Info("limit order filled")
	}

	if len(filled) > 0 {
		e.balance.Quote = e.balance.Quote.Add(quoteDelta)
		e.balance.Base = e.balance.Base.Add(baseDelta)
	}
	return filled
}

// CancelOrder releases the reservation of an open order and marks it
// CANCELLED. Unknown ids and non-open orders are a silent no-op (the UI may
// race a double cancel); the return value reports whether anything happened.
func (e *Engine) CancelOrder(orderID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.byID[orderID]
	if !ok || !o.IsOpen() {
		return false
	}
	o.Status = domain.Cancelled
	if o.Side == domain.Buy {
		e.balance.Quote = e.balance.Quote.Add(o.Notional)
	} else {
		e.balance.Base = e.balance.Base.Add(o.Quantity)
	}
	metrics.OrdersCancelled.WithLabelValues(string(o.Side)).Inc()
	metrics.OpenOrders.Dec()
	e.log.WithField("order_id", orderID).Info("order cancelled")
	return true
}

// Balance returns a copy of the current account balance.
func (e *Engine) Balance() domain.Balance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balance
}

// Orders returns copies of all orders, newest first.
func (e *Engine) Orders() []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := make([]domain.Order, 0, len(e.orders))
	for i := len(e.orders) - 1; i >= 0; i-- {
		res = append(res, *e.orders[i])
	}
	return res
}

// LastPrice returns the most recent tick price; ok is false before the first
// tick has been received.
func (e *Engine) LastPrice() (decimal.Decimal, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPrice, e.lastPrice.IsPositive()
}

func (e *Engine) Pair() string {
	return e.pair
}

// credit applies the receiving side of an executed order.
func (e *Engine) credit(o *domain.Order) {
	if o.Side == domain.Buy {
		e.balance.Base = e.balance.Base.Add(o.Quantity)
	} else {
		e.balance.Quote = e.balance.Quote.Add(o.Notional)
	}
}

func snapshotOrder(o *domain.Order) *domain.Order {
	cp := *o
	return &cp
}

func priceGauge(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
