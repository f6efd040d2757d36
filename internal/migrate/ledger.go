package migrate

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Ledger records applied migration IDs in .loom/loom.db.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (creating if needed) the ledger for a project root.
func OpenLedger(root string) (*Ledger, error) {
	dir := filepath.Join(root, ".loom")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("migrate: create ledger dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dir, "loom.db"))
	if err != nil {
		return nil, fmt.Errorf("migrate: open ledger: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("migrate: pragma %q: %w", p, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS applied_migrations (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: create schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Applied returns applied migration IDs in ID order.
func (l *Ledger) Applied() ([]string, error) {
	rows, err := l.db.Query("SELECT id FROM applied_migrations ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("migrate: query ledger: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkApplied records a migration as applied.
func (l *Ledger) MarkApplied(id, name string) error {
	_, err := l.db.Exec(
		"INSERT INTO applied_migrations (id, name, applied_at) VALUES (?, ?, ?)",
		id, name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("migrate: record %s: %w", id, err)
	}
	return nil
}

// Remove deletes a migration record, used on rollback.
func (l *Ledger) Remove(id string) error {
	_, err := l.db.Exec("DELETE FROM applied_migrations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("migrate: remove %s: %w", id, err)
	}
	return nil
}
