package journal

import (
	"time"

	"github.com/rustyeddy/gbce/market"
)

// TradeRecord is the journaled form of a recorded trade.
type TradeRecord struct {
	TradeID  string    `db:"trade_id"`
	Symbol   string    `db:"symbol"`
	Side     string    `db:"side"`
	Quantity int64     `db:"quantity"`
	Price    float64   `db:"price"`
	Time     time.Time `db:"time"`
}

// IndexSnapshot is the composite index at a point in time and the number of
// symbols that contributed to it.
type IndexSnapshot struct {
	Time    time.Time `db:"time"`
	Index   float64   `db:"value"`
	Symbols int       `db:"symbols"`
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordIndex(IndexSnapshot) error
	Close() error
}

func FromTrade(t market.Trade) TradeRecord {
	return TradeRecord{
		TradeID:  t.ID,
		Symbol:   t.Symbol,
		Side:     t.Side.String(),
		Quantity: t.Quantity,
		Price:    t.Price,
		Time:     t.Timestamp.UTC(),
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error   { return nil }
func (Nop) RecordIndex(IndexSnapshot) error { return nil }
func (Nop) Close() error                    { return nil }
