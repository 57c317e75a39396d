package journal

import (
	"fmt"

	"github.com/rustyeddy/gbce/config"
)

// Open builds the journal selected by cfg.Type.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return Nop{}, nil
	case "csv":
		return NewCSV(cfg.TradesFile, cfg.IndexFile)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
