package domain

import "github.com/shopspring/decimal"

// Balance holds the virtual account funds. Quote is the quote currency
// available for buying, Base the asset units available for selling. Funds
// reserved by open orders are already subtracted from both.
type Balance struct {
	Quote decimal.Decimal `json:"quote"`
	Base  decimal.Decimal `json:"base"`
}
