package infra

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/umalmyha/crm/internal/config"
)

const sqliteDSNParams = "?_busy_timeout=5000&_foreign_keys=on"

// Sqlite opens database file, single connection serializes writers inside the process
func Sqlite(ctx context.Context, cfg config.SqliteCfg) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", cfg.Path+sqliteDSNParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s - %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to access sqlite database %s - %w", cfg.Path, err)
	}
	return db, nil
}
