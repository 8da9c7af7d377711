package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenStoreDB opens a state.vscdb SQLite database in read-only mode
func OpenStoreDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// rawRecord is one undecoded key/value row from a store table.
type rawRecord struct {
	Key   string
	Value string
}

// tableExists reports whether the named table is present in the store.
// Cursor stores differ by age: workspace stores carry ItemTable, newer
// global stores carry cursorDiskKV, some carry both.
func tableExists(db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT name FROM sqlite_master
			WHERE type='table' AND name=?
		)
	`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for %s table: %w", name, err)
	}
	return exists, nil
}

// queryKV queries a key/value table with a LIKE pattern on the key
func queryKV(db *sql.DB, table, pattern string) ([]rawRecord, error) {
	query := fmt.Sprintf("SELECT key, value FROM %s WHERE key LIKE ? AND value IS NOT NULL", table)
	rows, err := db.Query(query, pattern)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []rawRecord
	for rows.Next() {
		var rec rawRecord
		var value sql.NullString
		if err := rows.Scan(&rec.Key, &value); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if value.Valid {
			rec.Value = value.String
			records = append(records, rec)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// queryItem fetches a single key from a key/value table. Missing keys
// are not an error, the returned bool reports presence.
func queryItem(db *sql.DB, table, key string) (rawRecord, bool, error) {
	query := fmt.Sprintf("SELECT key, value FROM %s WHERE key = ? AND value IS NOT NULL", table)

	var rec rawRecord
	var value sql.NullString
	err := db.QueryRow(query, key).Scan(&rec.Key, &value)
	if err == sql.ErrNoRows {
		return rawRecord{}, false, nil
	}
	if err != nil {
		return rawRecord{}, false, fmt.Errorf("query failed: %w", err)
	}
	if !value.Valid {
		return rawRecord{}, false, nil
	}
	rec.Value = value.String
	return rec, true, nil
}
