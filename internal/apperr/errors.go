// Package apperr defines sentinel error kinds shared across the service.
package apperr

import "errors"

var (
	// ErrNotFound means the requested document id is absent from the store.
	ErrNotFound = errors.New("not found")
	// ErrMalformedInput means a write was rejected before reaching the store
	// (e.g. a recipe without a name). The normalizer itself never returns it.
	ErrMalformedInput = errors.New("malformed input")
	// ErrRemote wraps failures of outbound calls (store, URL shortener).
	ErrRemote = errors.New("remote call failed")
)
