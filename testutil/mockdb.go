package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateStoreDB creates a file-backed state.vscdb at path with the
// cursorDiskKV and ItemTable tables Cursor stores use
func CreateStoreDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to create store database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS cursorDiskKV (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ItemTable (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}
	}

	return db
}

// InsertRecord inserts one key/value row into the given table
func InsertRecord(t *testing.T, db *sql.DB, table, key, value string) {
	t.Helper()
	if _, err := db.Exec("INSERT OR REPLACE INTO "+table+" (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert record %s: %v", key, err)
	}
}
