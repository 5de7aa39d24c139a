package core

import "errors"

var (
	// ErrInsufficientFunds is returned by PlaceOrder when the relevant balance
	// cannot cover the reservation. Expected condition, nothing was mutated.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidOrderParams covers non-positive quantities and prices as well
	// as unknown side/type values.
	ErrInvalidOrderParams = errors.New("invalid order parameters")

	// ErrPriceUnavailable is returned for MARKET orders placed before the feed
	// has delivered the first price tick.
	ErrPriceUnavailable = errors.New("market price unavailable")
)
