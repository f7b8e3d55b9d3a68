package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/wunjo/internal/apperr"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	body       TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, id)
);
`

// DB implements Store backed by a SQLite documents table.
type DB struct {
	conn *sql.DB
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Get returns the document with the given id, with "id" injected.
func (db *DB) Get(collection, id string) (Document, error) {
	var body string
	err := db.conn.QueryRow(
		`SELECT body FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s/%s: %w", collection, id, err)
	}
	return decodeDocument(body, id)
}

// Put fully replaces (or creates) the document with the given id.
func (db *DB) Put(collection, id string, doc Document) error {
	body, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`
		INSERT INTO documents (collection, id, body)
		VALUES (?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			body       = excluded.body,
			updated_at = CURRENT_TIMESTAMP
	`, collection, id, body)
	if err != nil {
		return fmt.Errorf("store: put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Add stores a new document under a generated id and returns the id.
func (db *DB) Add(collection string, doc Document) (string, error) {
	id := uuid.NewString()
	body, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}
	_, err = db.conn.Exec(
		`INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)`,
		collection, id, body,
	)
	if err != nil {
		return "", fmt.Errorf("store: add to %s: %w", collection, err)
	}
	return id, nil
}

// Delete removes the document with the given id.
func (db *DB) Delete(collection, id string) error {
	res, err := db.conn.Exec(
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("store: delete %s/%s: %w", collection, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ListAll returns every document in the collection in insertion order.
// The rowid is monotonic on insert and survives upserts, unlike created_at
// whose one-second precision cannot order rows written close together.
func (db *DB) ListAll(collection string) ([]Document, error) {
	rows, err := db.conn.Query(
		`SELECT id, body FROM documents WHERE collection = ? ORDER BY rowid`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", collection, err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(body, id)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Ensure creates the document if absent; an existing document is untouched.
func (db *DB) Ensure(collection, id string, doc Document) error {
	body, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		`INSERT OR IGNORE INTO documents (collection, id, body) VALUES (?, ?, ?)`,
		collection, id, body,
	)
	if err != nil {
		return fmt.Errorf("store: ensure %s/%s: %w", collection, id, err)
	}
	return nil
}

// UnionAppend appends value to the named array field unless already present.
// The read-modify-write runs inside a transaction so concurrent appends
// cannot drop each other's values.
func (db *DB) UnionAppend(collection, id, field, value string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	var body string
	err = tx.QueryRow(
		`SELECT body FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: union read %s/%s: %w", collection, id, err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return fmt.Errorf("store: union decode %s/%s: %w", collection, id, err)
	}

	updated, changed := unionInsert(doc[field], value)
	if !changed {
		return tx.Commit()
	}
	doc[field] = updated

	newBody, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: union encode %s/%s: %w", collection, id, err)
	}
	_, err = tx.Exec(
		`UPDATE documents SET body = ?, updated_at = CURRENT_TIMESTAMP WHERE collection = ? AND id = ?`,
		string(newBody), collection, id,
	)
	if err != nil {
		return fmt.Errorf("store: union write %s/%s: %w", collection, id, err)
	}
	return tx.Commit()
}

// unionInsert appends value to a JSON array field unless it is already an
// element. A missing or non-array field is replaced by a fresh array.
func unionInsert(field any, value string) ([]any, bool) {
	arr, ok := field.([]any)
	if !ok {
		return []any{value}, true
	}
	for _, v := range arr {
		if s, ok := v.(string); ok && s == value {
			return arr, false
		}
	}
	return append(arr, value), true
}

func encodeDocument(doc Document) (string, error) {
	// The id lives in its own column; never persist it inside the body.
	clean := make(Document, len(doc))
	for k, v := range doc {
		if k == "id" {
			continue
		}
		clean[k] = v
	}
	body, err := json.Marshal(clean)
	if err != nil {
		return "", fmt.Errorf("store: encode document: %w", err)
	}
	return string(body), nil
}

func decodeDocument(body, id string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("store: decode document %s: %w", id, err)
	}
	doc["id"] = id
	return doc, nil
}
