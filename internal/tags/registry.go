// Package tags maintains the shared course/category tag vocabularies.
package tags

import (
	"fmt"
	"strings"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/normalize"
	"github.com/starford/wunjo/internal/store"
)

// Registry field names.
const (
	FieldCourses    = "courses"
	FieldCategories = "categories"
)

const (
	metaCollection = "meta"
	registryDocID  = "tags"
)

// Registry reads and grows the global tag vocabularies. Both sets are
// append-only by union: a tag, once added, is never removed here.
type Registry struct {
	store store.Store
}

// NewRegistry creates a registry accessor over the given store.
func NewRegistry(s store.Store) *Registry {
	return &Registry{store: s}
}

// Get returns the current vocabularies, lazily creating an empty registry
// document on first access. The creation is an idempotent upsert, so
// concurrent first calls cannot produce duplicate registries.
func (r *Registry) Get() (models.Tags, error) {
	empty := store.Document{
		FieldCourses:    []string{},
		FieldCategories: []string{},
	}
	if err := r.store.Ensure(metaCollection, registryDocID, empty); err != nil {
		return models.Tags{}, fmt.Errorf("tags: init registry: %w", err)
	}
	doc, err := r.store.Get(metaCollection, registryDocID)
	if err != nil {
		return models.Tags{}, fmt.Errorf("tags: read registry: %w", err)
	}
	return models.Tags{
		Courses:    normalize.StringSlice(doc[FieldCourses]),
		Categories: normalize.StringSlice(doc[FieldCategories]),
	}, nil
}

// Add performs a set-union insert of value into the named field. Adding a
// value that is already present is a no-op.
func (r *Registry) Add(field, value string) error {
	if field != FieldCourses && field != FieldCategories {
		return fmt.Errorf("tags: unknown field %q: %w", field, apperr.ErrMalformedInput)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("tags: empty value: %w", apperr.ErrMalformedInput)
	}
	// Make sure the registry exists before appending; UnionAppend requires
	// the document to be present.
	if _, err := r.Get(); err != nil {
		return err
	}
	if err := r.store.UnionAppend(metaCollection, registryDocID, field, value); err != nil {
		return fmt.Errorf("tags: add %s %q: %w", field, value, err)
	}
	return nil
}
