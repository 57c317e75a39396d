// Package exchange records trades against a stock catalog and derives market
// metrics from the resulting ledger.
package exchange

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rustyeddy/gbce/internal/id"
	"github.com/rustyeddy/gbce/journal"
	"github.com/rustyeddy/gbce/market"
)

// Exchange owns a catalog and a ledger and is the only writer of trades.
type Exchange struct {
	mu      sync.Mutex
	catalog *market.Catalog
	ledger  *market.Ledger
	journal journal.Journal
	now     func() time.Time
}

type Option func(*Exchange)

// WithClock replaces time.Now as the source of trade timestamps and of the
// end of the volume-weighted price window.
func WithClock(now func() time.Time) Option {
	return func(e *Exchange) { e.now = now }
}

// WithJournal writes every recorded trade to j before it is appended.
func WithJournal(j journal.Journal) Option {
	return func(e *Exchange) { e.journal = j }
}

func New(catalog *market.Catalog, opts ...Option) *Exchange {
	if catalog == nil {
		catalog = market.NewCatalog()
	}
	e := &Exchange{
		catalog: catalog,
		ledger:  market.NewLedger(),
		journal: journal.Nop{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exchange) Catalog() *market.Catalog { return e.catalog }
func (e *Exchange) Ledger() *market.Ledger   { return e.ledger }

// Calculator returns a read-only calculator over this exchange's state.
func (e *Exchange) Calculator() *Calculator {
	return NewCalculator(e.catalog, e.ledger, e.now)
}

func (e *Exchange) AddStock(s market.Stock) { e.catalog.Add(s) }

func (e *Exchange) History(symbol string) []market.Trade { return e.ledger.History(symbol) }

func (e *Exchange) SymbolsWithTrades() []string { return e.ledger.SymbolsWithTrades() }

// Trades returns every symbol's trade history.
func (e *Exchange) Trades() map[string][]market.Trade { return e.ledger.All() }

// RecordTrade validates the request, stamps it with the current time and
// appends it to the ledger. Either every check passes and the trade is
// appended, or nothing is.
func (e *Exchange) RecordTrade(symbol string, quantity int64, side string, price float64) (market.Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.catalog.Get(symbol); !ok {
		return market.Trade{}, fmt.Errorf("record trade %s: %w", symbol, ErrUnknownStock)
	}
	sd, ok := market.ParseSide(side)
	if !ok {
		return market.Trade{}, fmt.Errorf("record trade %s: side %q: %w", symbol, side, ErrInvalidTradeSide)
	}
	if quantity <= 0 {
		return market.Trade{}, fmt.Errorf("record trade %s: %d: %w", symbol, quantity, ErrInvalidQuantity)
	}
	if !validPrice(price) {
		return market.Trade{}, fmt.Errorf("record trade %s: %v: %w", symbol, price, ErrInvalidPrice)
	}

	ts := e.now()
	if last, ok := e.ledger.Last(symbol); ok && ts.Before(last.Timestamp) {
		ts = last.Timestamp
	}

	t := market.Trade{
		ID:        id.At(ts),
		Symbol:    symbol,
		Quantity:  quantity,
		Side:      sd,
		Price:     price,
		Timestamp: ts,
	}
	if err := e.journal.RecordTrade(journal.FromTrade(t)); err != nil {
		return market.Trade{}, fmt.Errorf("record trade %s: journal: %w", symbol, err)
	}
	e.ledger.Record(t)
	return t, nil
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 1)
}
