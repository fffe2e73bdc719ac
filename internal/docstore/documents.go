package docstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/neezar-abd/nzardev/internal/apperr"
)

// Query describes an equality filter with optional ordering.
// A zero Field means no filter; a zero OrderBy means storage order.
type Query struct {
	Field   string
	Equals  any
	OrderBy string
	Desc    bool
}

// Field names are interpolated into json_extract paths, so they are
// restricted to plain identifiers.
var fieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func jsonPath(field string) (string, error) {
	if !fieldNameRe.MatchString(field) {
		return "", fmt.Errorf("docstore: invalid field name: %s", field)
	}
	return "$." + field, nil
}

// unavailable wraps a driver failure so callers can match
// apperr.ErrUnavailable and degrade instead of aborting.
func unavailable(op string, err error) error {
	return fmt.Errorf("docstore: %s: %v: %w", op, err, apperr.ErrUnavailable)
}

// Get returns the document with the given id, or apperr.ErrNotFound.
func (db *DB) Get(collection, id string) (*Document, error) {
	var raw string
	err := db.conn.QueryRow(
		`SELECT data FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get", err)
	}
	data := make(map[string]any)
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("docstore: decode %s/%s: %w", collection, id, err)
	}
	return &Document{ID: id, Data: data}, nil
}

// Set writes the full document payload, replacing any existing one.
func (db *DB) Set(collection, id string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO documents (collection, id, data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(collection, id) DO UPDATE SET
			data       = excluded.data,
			updated_at = excluded.updated_at
	`, collection, id, string(raw))
	if err != nil {
		return unavailable("set", err)
	}
	return nil
}

// SetIfAbsent creates the document only when no record exists yet and
// reports whether it was created. Concurrent callers racing on the same
// id cannot produce duplicates: the insert is a single idempotent
// statement, so the loser's write is a no-op.
func (db *DB) SetIfAbsent(collection, id string, data map[string]any) (bool, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("docstore: encode %s/%s: %w", collection, id, err)
	}
	res, err := db.conn.Exec(
		`INSERT OR IGNORE INTO documents (collection, id, data) VALUES (?, ?, ?)`,
		collection, id, string(raw),
	)
	if err != nil {
		return false, unavailable("set-if-absent", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Update shallow-merges fields into an existing document.
// Returns apperr.ErrNotFound when the document does not exist.
func (db *DB) Update(collection, id string, fields map[string]any) error {
	doc, err := db.Get(collection, id)
	if err != nil {
		return err
	}
	for k, v := range fields {
		doc.Data[k] = v
	}
	return db.Set(collection, id, doc.Data)
}

// Delete removes a document. Deleting an absent document is not an error.
func (db *DB) Delete(collection, id string) error {
	_, err := db.conn.Exec(
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return unavailable("delete", err)
	}
	return nil
}

// Query returns every document in collection matching q.
func (db *DB) Query(collection string, q Query) ([]Document, error) {
	sqlText := `SELECT id, data FROM documents WHERE collection = ?`
	args := []any{collection}

	if q.Field != "" {
		path, err := jsonPath(q.Field)
		if err != nil {
			return nil, err
		}
		sqlText += fmt.Sprintf(` AND json_extract(data, '%s') = ?`, path)
		args = append(args, q.Equals)
	}
	if q.OrderBy != "" {
		path, err := jsonPath(q.OrderBy)
		if err != nil {
			return nil, err
		}
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		sqlText += fmt.Sprintf(` ORDER BY json_extract(data, '%s') %s`, path, dir)
	}

	rows, err := db.conn.Query(sqlText, args...)
	if err != nil {
		return nil, unavailable("query", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, unavailable("query scan", err)
		}
		data := make(map[string]any)
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("docstore: decode %s/%s: %w", collection, id, err)
		}
		out = append(out, Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("query rows", err)
	}
	return out, nil
}
