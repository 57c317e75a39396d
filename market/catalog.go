package market

import (
	"sort"
	"sync"
)

// Catalog holds the known stocks keyed by symbol.
type Catalog struct {
	mu     sync.RWMutex
	stocks map[string]Stock
}

func NewCatalog(stocks ...Stock) *Catalog {
	c := &Catalog{stocks: make(map[string]Stock, len(stocks))}
	for _, s := range stocks {
		c.Add(s)
	}
	return c
}

// Add inserts or replaces the stock under its symbol. Last write wins.
func (c *Catalog) Add(s Stock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stocks[s.Symbol] = s
}

// Get is a case-sensitive lookup.
func (c *Catalog) Get(symbol string) (Stock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stocks[symbol]
	return s, ok
}

// All returns a snapshot of the catalog. Changing the returned map does not
// affect the catalog.
func (c *Catalog) All() map[string]Stock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Stock, len(c.stocks))
	for k, v := range c.stocks {
		out[k] = v
	}
	return out
}

// Symbols returns the catalog symbols in sorted order.
func (c *Catalog) Symbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.stocks))
	for k := range c.stocks {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stocks)
}
