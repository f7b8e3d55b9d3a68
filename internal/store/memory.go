package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/wunjo/internal/apperr"
)

// Memory implements Store with mutex-guarded maps. It is the injectable
// substitute for the SQLite store in tests. Documents round-trip through
// JSON on every read and write so callers observe the same decoded types
// (e.g. []any instead of []string) the persistent store would produce.
type Memory struct {
	mu    sync.Mutex
	colls map[string]map[string]string // collection -> id -> JSON body
	order map[string][]string          // collection -> ids in insertion order
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		colls: make(map[string]map[string]string),
		order: make(map[string][]string),
	}
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }

// Get returns the document with the given id, with "id" injected.
func (m *Memory) Get(collection, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.colls[collection][id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return decodeDocument(body, id)
}

// Put fully replaces (or creates) the document with the given id.
func (m *Memory) Put(collection, id string, doc Document) error {
	body, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(collection, id, body)
	return nil
}

// Add stores a new document under a generated id and returns the id.
func (m *Memory) Add(collection string, doc Document) (string, error) {
	body, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(collection, id, body)
	return id, nil
}

// Delete removes the document with the given id.
func (m *Memory) Delete(collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.colls[collection][id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.colls[collection], id)
	ids := m.order[collection]
	for i, existing := range ids {
		if existing == id {
			m.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// ListAll returns every document in the collection in insertion order.
func (m *Memory) ListAll(collection string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Document
	for _, id := range m.order[collection] {
		doc, err := decodeDocument(m.colls[collection][id], id)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// Ensure creates the document if absent; an existing document is untouched.
func (m *Memory) Ensure(collection, id string, doc Document) error {
	body, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.colls[collection][id]; ok {
		return nil
	}
	m.set(collection, id, body)
	return nil
}

// UnionAppend appends value to the named array field unless already present.
func (m *Memory) UnionAppend(collection, id, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.colls[collection][id]
	if !ok {
		return apperr.ErrNotFound
	}
	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return fmt.Errorf("store: union decode %s/%s: %w", collection, id, err)
	}
	updated, changed := unionInsert(doc[field], value)
	if !changed {
		return nil
	}
	doc[field] = updated
	newBody, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: union encode %s/%s: %w", collection, id, err)
	}
	m.colls[collection][id] = string(newBody)
	return nil
}

// set stores a body and records insertion order for new ids.
// Caller must hold the mutex.
func (m *Memory) set(collection, id, body string) {
	if m.colls[collection] == nil {
		m.colls[collection] = make(map[string]string)
	}
	if _, existed := m.colls[collection][id]; !existed {
		m.order[collection] = append(m.order[collection], id)
	}
	m.colls[collection][id] = body
}
