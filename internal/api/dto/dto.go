package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	Limit  OrderType = "LIMIT"
	Market OrderType = "MARKET"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type PlaceOrderRequest struct {
	Side     Side            `json:"side" binding:"required,oneof=BUY SELL"`
	Type     OrderType       `json:"type" binding:"required,oneof=LIMIT MARKET"`
	Quantity decimal.Decimal `json:"quantity" binding:"required,dgt"`
	Price    decimal.Decimal `json:"price,omitempty"` // required for LIMIT, checked by the engine
}

type PlaceOrderResponse struct {
	Order Order `json:"order"`
}

type CancelOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type CancelOrderResponse struct {
	OrderID   string `json:"order_id"`
	Cancelled bool   `json:"cancelled"`
}

type GetOrdersResponse struct {
	Orders []Order `json:"orders"`
}

type GetBalanceResponse struct {
	Quote decimal.Decimal `json:"quote"`
	Base  decimal.Decimal `json:"base"`
}

type GetCandlesResponse struct {
	Pair     string   `json:"pair"`
	Interval string   `json:"interval"`
	Candles  []Candle `json:"candles"`
}

type Order struct {
	ID        string          `json:"id"`
	Pair      string          `json:"pair"`
	Side      Side            `json:"side"`
	Type      OrderType       `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notional  decimal.Decimal `json:"notional"`
	Filled    string          `json:"filled"` // "0.00%" or "100.00%", no partial fills
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type Candle struct {
	OpenTime time.Time       `json:"open_time"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	Volume   decimal.Decimal `json:"volume"`
}

type Ticker struct {
	Pair  string          `json:"pair"`
	Price decimal.Decimal `json:"price"`
	Time  time.Time       `json:"time"`
}
