package journal

import migrate "github.com/rubenv/sql-migrate"

// Migrations is the SQLite journal schema.
var Migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "0001_trades",
			Up: []string{`
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price REAL NOT NULL,
	time DATETIME NOT NULL
);`,
				`CREATE INDEX IF NOT EXISTS idx_trades_symbol_time ON trades(symbol, time);`,
			},
			Down: []string{`DROP TABLE IF EXISTS trades;`},
		},
		{
			Id: "0002_index_snapshots",
			Up: []string{`
CREATE TABLE IF NOT EXISTS index_snapshots (
	time DATETIME NOT NULL,
	value REAL NOT NULL,
	symbols INTEGER NOT NULL
);`,
				`CREATE INDEX IF NOT EXISTS idx_index_snapshots_time ON index_snapshots(time);`,
			},
			Down: []string{`DROP TABLE IF EXISTS index_snapshots;`},
		},
	},
}
