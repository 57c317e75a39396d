package market

import (
	"sort"
	"sync"
)

// Ledger is the append-only trade history per symbol. Insertion order is
// chronological order. The ledger performs no validation.
type Ledger struct {
	mu     sync.RWMutex
	trades map[string][]Trade
}

func NewLedger() *Ledger {
	return &Ledger{trades: make(map[string][]Trade)}
}

// Record appends t to its symbol's history, creating the history on first use.
func (l *Ledger) Record(t Trade) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trades[t.Symbol] = append(l.trades[t.Symbol], t)
}

// History returns a copy of the symbol's trades, oldest first. An unknown
// symbol yields an empty slice.
func (l *Ledger) History(symbol string) []Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()
	h := l.trades[symbol]
	out := make([]Trade, len(h))
	copy(out, h)
	return out
}

// Last returns the most recent trade for symbol.
func (l *Ledger) Last(symbol string) (Trade, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	h := l.trades[symbol]
	if len(h) == 0 {
		return Trade{}, false
	}
	return h[len(h)-1], true
}

// SymbolsWithTrades returns, in sorted order, every symbol that has at least
// one recorded trade.
func (l *Ledger) SymbolsWithTrades() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.trades))
	for sym, h := range l.trades {
		if len(h) > 0 {
			out = append(out, sym)
		}
	}
	sort.Strings(out)
	return out
}

// All returns a snapshot of every symbol's history.
func (l *Ledger) All() map[string][]Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string][]Trade, len(l.trades))
	for sym, h := range l.trades {
		cp := make([]Trade, len(h))
		copy(cp, h)
		out[sym] = cp
	}
	return out
}
