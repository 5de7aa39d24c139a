package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string
type OrderType string
type OrderStatus string

const (
	Buy       Side        = "BUY"
	Sell      Side        = "SELL"
	Limit     OrderType   = "LIMIT"
	Market    OrderType   = "MARKET"
	Open      OrderStatus = "OPEN"
	Filled    OrderStatus = "FILLED"
	Cancelled OrderStatus = "CANCELLED"
)

// Order is a simulated trading intent. All fields except Status are frozen at
// placement: Price is the limit price (for MARKET orders the execution price at
// placement, informational only) and Notional is Quantity*Price, the amount of
// quote currency reserved or released regardless of later price moves.
type Order struct {
	ID        string          `json:"id"`
	Pair      string          `json:"pair"`
	Side      Side            `json:"side"`
	Type      OrderType       `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notional  decimal.Decimal `json:"notional"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func (o *Order) IsOpen() bool {
	return o.Status == Open
}
