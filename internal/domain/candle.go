package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one OHLCV bar as delivered by the upstream feed. The engine only
// consumes the close price; the full bar is kept for the chart.
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
