// Package store provides the document store the recipe catalog persists to.
// Documents are schemaless JSON objects grouped into named collections; the
// normalizer, not the store, is responsible for reconciling their shape.
package store

// Document is a raw stored record. Implementations inject the document id
// under the "id" key on reads and strip it again on writes, so callers see
// the id without it being duplicated inside the stored body.
type Document = map[string]any

// Store is the interface for document operations. Callers receive it as an
// explicit dependency so tests can substitute the in-memory implementation.
type Store interface {
	// Get returns the document with the given id, or apperr.ErrNotFound.
	Get(collection, id string) (Document, error)
	// Put fully replaces (or creates) the document with the given id.
	Put(collection, id string, doc Document) error
	// Add stores a new document under a freshly assigned id and returns it.
	Add(collection string, doc Document) (string, error)
	// Delete removes the document with the given id, or apperr.ErrNotFound.
	Delete(collection, id string) error
	// ListAll returns every document in the collection in a stable order.
	ListAll(collection string) ([]Document, error)
	// Ensure creates the document if it does not exist yet. It is a no-op
	// when the document is already present, so concurrent first calls are
	// safe (idempotent upsert).
	Ensure(collection, id string, doc Document) error
	// UnionAppend atomically appends value to the named array field unless
	// it is already an element (set-union insert). The document must exist.
	UnionAppend(collection, id, field, value string) error
	Close() error
}
