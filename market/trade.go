package market

import (
	"strings"
	"time"
)

type Side int

const (
	Buy Side = iota + 1
	Sell
)

// ParseSide accepts the single letter codes B and S in any case.
func ParseSide(s string) (Side, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B":
		return Buy, true
	case "S":
		return Sell, true
	default:
		return 0, false
	}
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Code is the single letter form used in the sample data and the shell.
func (s Side) Code() string {
	switch s {
	case Buy:
		return "B"
	case Sell:
		return "S"
	default:
		return "?"
	}
}

// Trade is one executed order. Trades are immutable once recorded.
type Trade struct {
	ID        string
	Symbol    string
	Quantity  int64
	Side      Side
	Price     float64
	Timestamp time.Time
}

// Notional is price times quantity.
func (t Trade) Notional() float64 {
	return t.Price * float64(t.Quantity)
}
