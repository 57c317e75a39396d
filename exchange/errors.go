package exchange

import "errors"

var (
	// ErrUnknownStock is returned when a trade names a symbol missing from the catalog.
	ErrUnknownStock = errors.New("unknown stock")
	// ErrInvalidTradeSide is returned for a side other than buy or sell.
	ErrInvalidTradeSide = errors.New("invalid trade side")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrInvalidWindow    = errors.New("window must not be negative")
	// ErrUndefinedRatio is returned when the P/E ratio would divide by a zero
	// or missing dividend yield.
	ErrUndefinedRatio = errors.New("undefined P/E ratio")
	// ErrNoDataForIndex is returned when no symbol has a positive all-time
	// volume-weighted price.
	ErrNoDataForIndex = errors.New("no data for index")
)
