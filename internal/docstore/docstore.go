// Package docstore provides a Firestore-like document store backed by SQLite.
// Documents are schemaless JSON payloads addressed by (collection, id), with
// equality filters and ordering served through the JSON1 extension.
package docstore

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       TEXT NOT NULL DEFAULT '{}',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
`

// Document is one stored record. Data holds the decoded JSON payload.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the interface for document operations. Consumers should depend
// on this interface rather than the concrete *DB type to facilitate
// testing with unreachable-store stand-ins.
type Store interface {
	Get(collection, id string) (*Document, error)
	Set(collection, id string, data map[string]any) error
	SetIfAbsent(collection, id string, data map[string]any) (bool, error)
	Update(collection, id string, fields map[string]any) error
	Delete(collection, id string) error
	Query(collection string, q Query) ([]Document, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// DB wraps a sql.DB with document-store operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("docstore: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("docstore: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("docstore: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Ping reports whether the store is reachable.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
