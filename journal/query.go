package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const tradeColumns = `trade_id, symbol, side, quantity, price, time`

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord
	err := j.db.Get(&rec, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesBetween returns trades recorded within [start, end), oldest first.
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	var out []TradeRecord
	err := j.db.Select(&out, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, trade_id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesBySymbol returns every trade for symbol, oldest first.
func (j *SQLite) ListTradesBySymbol(symbol string) ([]TradeRecord, error) {
	var out []TradeRecord
	err := j.db.Select(&out, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE symbol = ?
		ORDER BY time ASC, trade_id ASC`, symbol)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListIndexBetween returns index snapshots taken within [start, end).
func (j *SQLite) ListIndexBetween(start, end time.Time) ([]IndexSnapshot, error) {
	var out []IndexSnapshot
	err := j.db.Select(&out, `
		SELECT time, value, symbols
		FROM index_snapshots
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	return out, nil
}
