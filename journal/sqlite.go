package journal

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
)

type SQLite struct {
	db *sqlx.DB
}

// NewSQLite opens (or creates) the journal database at path and applies any
// pending migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	if _, err := migrate.Exec(db.DB, "sqlite3", Migrations, migrate.Up); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal db: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	t.Time = t.Time.UTC()
	_, err := j.db.NamedExec(`
		INSERT INTO trades (trade_id, symbol, side, quantity, price, time)
		VALUES (:trade_id, :symbol, :side, :quantity, :price, :time)`, t)
	return err
}

func (j *SQLite) RecordIndex(s IndexSnapshot) error {
	s.Time = s.Time.UTC()
	_, err := j.db.NamedExec(`
		INSERT INTO index_snapshots (time, value, symbols)
		VALUES (:time, :value, :symbols)`, s)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
