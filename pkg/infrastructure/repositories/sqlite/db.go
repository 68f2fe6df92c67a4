// Package sqlite stores the sales ledger and production orders in a local
// SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// every connection to :memory: is a separate database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Migrate creates the tables if they do not exist
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id            TEXT PRIMARY KEY,
		product_code  TEXT NOT NULL,
		sold_on       TEXT NOT NULL,
		quantity      REAL NOT NULL DEFAULT 0,
		cost_of_goods REAL NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sales_product_date ON sales(product_code, sold_on)`,

	`CREATE TABLE IF NOT EXISTS production_orders (
		order_number TEXT PRIMARY KEY,
		customer     TEXT NOT NULL DEFAULT '',
		product      TEXT NOT NULL DEFAULT '',
		quantity     REAL NOT NULL DEFAULT 0,
		area         REAL NOT NULL DEFAULT 0,
		net_value    REAL NOT NULL DEFAULT 0,
		planned_date TEXT,
		status       TEXT NOT NULL DEFAULT 'novo',
		completed_at TEXT
	)`,
}
