package market

import (
	"errors"
	"fmt"
	"strings"
)

type StockType int

const (
	CommonStock StockType = iota
	PreferredStock
)

func (t StockType) String() string {
	switch t {
	case CommonStock:
		return "Common"
	case PreferredStock:
		return "Preferred"
	default:
		return fmt.Sprintf("StockType(%d)", int(t))
	}
}

// ParseStockType accepts "common" or "preferred" in any case.
func ParseStockType(s string) (StockType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COMMON":
		return CommonStock, nil
	case "PREFERRED":
		return PreferredStock, nil
	default:
		return 0, fmt.Errorf("unknown stock type %q", s)
	}
}

// Dividend is the dividend terms of a stock. It is implemented only by
// Common and Preferred, and the stock type follows from which one is held.
type Dividend interface {
	// Amount is the per-share dividend for a stock with the given par value.
	Amount(parValue float64) float64
	stockType() StockType
}

// Common stock pays its last declared dividend.
type Common struct {
	LastDividend float64
}

func (c Common) Amount(float64) float64 {
	return c.LastDividend
}

func (Common) stockType() StockType {
	return CommonStock
}

// Preferred stock pays a fixed ratio of par value, e.g. 0.02 for 2%.
type Preferred struct {
	FixedDividend float64
}

func (p Preferred) Amount(parValue float64) float64 {
	return p.FixedDividend * parValue
}

func (Preferred) stockType() StockType {
	return PreferredStock
}

type Stock struct {
	Symbol   string
	ParValue float64
	Dividend Dividend
}

// NewStock normalizes the symbol to upper case and validates the terms.
func NewStock(symbol string, parValue float64, d Dividend) (Stock, error) {
	s := Stock{
		Symbol:   NormalizeSymbol(symbol),
		ParValue: parValue,
		Dividend: d,
	}
	if err := s.Validate(); err != nil {
		return Stock{}, err
	}
	return s, nil
}

// Type reports CommonStock for a stock without dividend terms; such a stock
// fails Validate and has no dividend yield.
func (s Stock) Type() StockType {
	if s.Dividend == nil {
		return CommonStock
	}
	return s.Dividend.stockType()
}

func (s Stock) Validate() error {
	if s.Symbol == "" {
		return errors.New("stock symbol is required")
	}
	if s.ParValue <= 0 {
		return fmt.Errorf("stock %s: par value must be positive", s.Symbol)
	}
	switch d := s.Dividend.(type) {
	case Common:
		if d.LastDividend < 0 {
			return fmt.Errorf("stock %s: last dividend must not be negative", s.Symbol)
		}
	case Preferred:
		if d.FixedDividend < 0 {
			return fmt.Errorf("stock %s: fixed dividend must not be negative", s.Symbol)
		}
	default:
		return fmt.Errorf("stock %s: dividend terms are required", s.Symbol)
	}
	return nil
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
