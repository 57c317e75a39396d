package exchange

import (
	"fmt"
	"time"

	"github.com/rustyeddy/gbce/indicators"
	"github.com/rustyeddy/gbce/market"
)

// DefaultWindow is the trailing window used for the volume-weighted price.
const DefaultWindow = 5 * time.Minute

// Calculator derives metrics from a catalog and a ledger. It never mutates
// either.
//
// Lookups that find nothing to report return ok == false with a nil error;
// requests that cannot be answered return an error.
type Calculator struct {
	catalog *market.Catalog
	ledger  *market.Ledger
	now     func() time.Time
}

func NewCalculator(c *market.Catalog, l *market.Ledger, now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{catalog: c, ledger: l, now: now}
}

// DividendYield reports ok == false when symbol is not in the catalog or has
// no dividend terms.
func (c *Calculator) DividendYield(symbol string, price float64) (float64, bool, error) {
	if !validPrice(price) {
		return 0, false, fmt.Errorf("dividend yield %s: %v: %w", symbol, price, ErrInvalidPrice)
	}
	s, ok := c.catalog.Get(symbol)
	if !ok || s.Dividend == nil {
		return 0, false, nil
	}
	return indicators.DividendYield(s, price), true, nil
}

// PERatio is price over dividend yield. An unknown stock or a zero yield is
// ErrUndefinedRatio.
func (c *Calculator) PERatio(symbol string, price float64) (float64, error) {
	y, ok, err := c.DividendYield(symbol, price)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("P/E ratio %s: no dividend yield: %w", symbol, ErrUndefinedRatio)
	}
	pe, ok := indicators.PERatio(price, y)
	if !ok {
		return 0, fmt.Errorf("P/E ratio %s: zero dividend yield: %w", symbol, ErrUndefinedRatio)
	}
	return pe, nil
}

// VolumeWeightedPrice averages trade prices weighted by quantity over
// [now-window, now]. A zero window includes every trade for the symbol.
// ok is false when no trade qualifies.
func (c *Calculator) VolumeWeightedPrice(symbol string, window time.Duration) (float64, bool, error) {
	if window < 0 {
		return 0, false, fmt.Errorf("volume weighted price %s: %s: %w", symbol, window, ErrInvalidWindow)
	}
	var since, until time.Time
	if window > 0 {
		until = c.now()
		since = until.Add(-window)
	}
	v, ok := indicators.VolumeWeightedPrice(c.ledger.History(symbol), since, until)
	return v, ok, nil
}

// Index is a composite index value and the symbols that made it up.
type Index struct {
	Value   float64
	Symbols []string
	Time    time.Time
}

// CompositeIndex is the geometric mean of the all-time volume-weighted
// prices of every traded symbol.
func (c *Calculator) CompositeIndex() (float64, error) {
	idx, err := c.Index()
	if err != nil {
		return 0, err
	}
	return idx.Value, nil
}

// Index computes the composite index along with its constituents. Symbols
// whose weighted price is missing or not positive are left out.
func (c *Calculator) Index() (Index, error) {
	var (
		symbols []string
		values  []float64
	)
	for _, sym := range c.ledger.SymbolsWithTrades() {
		v, ok, _ := c.VolumeWeightedPrice(sym, 0)
		if !ok || v <= 0 {
			continue
		}
		symbols = append(symbols, sym)
		values = append(values, v)
	}

	gm, _, ok := indicators.GeometricMean(values)
	if !ok {
		return Index{}, ErrNoDataForIndex
	}
	return Index{Value: gm, Symbols: symbols, Time: c.now()}, nil
}

// Summary collects every per-symbol metric at a price. Nil fields had
// nothing to report.
type Summary struct {
	Symbol              string
	Price               float64
	Window              time.Duration
	DividendYield       *float64
	PERatio             *float64
	VolumeWeightedPrice *float64
}

// Summary fails only when price or window is invalid.
func (c *Calculator) Summary(symbol string, price float64, window time.Duration) (Summary, error) {
	s := Summary{Symbol: symbol, Price: price, Window: window}

	y, ok, err := c.DividendYield(symbol, price)
	if err != nil {
		return Summary{}, err
	}
	if ok {
		s.DividendYield = &y
	}
	if pe, err := c.PERatio(symbol, price); err == nil {
		s.PERatio = &pe
	}

	v, ok, err := c.VolumeWeightedPrice(symbol, window)
	if err != nil {
		return Summary{}, err
	}
	if ok {
		s.VolumeWeightedPrice = &v
	}
	return s, nil
}
