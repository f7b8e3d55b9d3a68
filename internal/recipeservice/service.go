// Package recipeservice coordinates the document store, the normalizer, and
// the filter engine for the API layer.
package recipeservice

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/filter"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/normalize"
	"github.com/starford/wunjo/internal/store"
)

const recipeCollection = "recipes"

// Notifier receives recipe change events ("created", "updated", "deleted",
// "restored") for live catalog updates.
type Notifier func(kind, id string)

// deletedDoc is the single-slot undo buffer entry. The raw document is kept
// (not the canonical form) so a restore is faithful even for documents
// written by older schema versions.
type deletedDoc struct {
	id  string
	doc store.Document
}

// Service implements recipe catalog operations over an injected store.
type Service struct {
	store  store.Store
	notify Notifier

	mu          sync.Mutex
	lastDeleted *deletedDoc
}

// NewService creates a new recipe service. notify may be nil.
func NewService(s store.Store, notify Notifier) *Service {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Service{store: s, notify: notify}
}

// Get returns the canonical recipe with the given id.
func (s *Service) Get(_ context.Context, id string) (*models.Recipe, error) {
	doc, err := s.store.Get(recipeCollection, id)
	if err != nil {
		return nil, err
	}
	r := normalize.ToCanonical(doc)
	return &r, nil
}

// List returns the recipes matching the query, in stable store order.
// Every stored document is normalized before filtering, so legacy blob-typed
// documents participate in search like any other.
func (s *Service) List(_ context.Context, q filter.Query) ([]models.Recipe, error) {
	docs, err := s.store.ListAll(recipeCollection)
	if err != nil {
		return nil, err
	}
	recipes := make([]models.Recipe, len(docs))
	for i, doc := range docs {
		recipes[i] = normalize.ToCanonical(doc)
	}
	return filter.Apply(recipes, q), nil
}

// Create stores a new recipe and returns it with the assigned id.
func (s *Service) Create(ctx context.Context, r models.Recipe) (*models.Recipe, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("recipe name is required: %w", apperr.ErrMalformedInput)
	}
	id, err := s.store.Add(recipeCollection, normalize.ToRecord(r))
	if err != nil {
		return nil, err
	}
	s.notify("created", id)
	return s.Get(ctx, id)
}

// Update fully replaces the stored recipe. Last write wins; there is no
// optimistic locking across sessions.
func (s *Service) Update(ctx context.Context, id string, r models.Recipe) (*models.Recipe, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("recipe name is required: %w", apperr.ErrMalformedInput)
	}
	if _, err := s.store.Get(recipeCollection, id); err != nil {
		return nil, err
	}
	if err := s.store.Put(recipeCollection, id, normalize.ToRecord(r)); err != nil {
		return nil, err
	}
	s.notify("updated", id)
	return s.Get(ctx, id)
}

// Delete removes a recipe, keeping its raw document in the session-local
// undo slot. The slot holds exactly one entry: a second delete overwrites it
// and the earlier deletion becomes unrecoverable through Restore.
func (s *Service) Delete(_ context.Context, id string) error {
	doc, err := s.store.Get(recipeCollection, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(recipeCollection, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastDeleted = &deletedDoc{id: id, doc: doc}
	s.mu.Unlock()
	s.notify("deleted", id)
	return nil
}

// Restore re-creates the most recently deleted recipe under its original id
// and clears the undo slot. An empty slot reports ErrNotFound.
func (s *Service) Restore(ctx context.Context) (*models.Recipe, error) {
	s.mu.Lock()
	last := s.lastDeleted
	s.lastDeleted = nil
	s.mu.Unlock()
	if last == nil {
		return nil, fmt.Errorf("nothing to restore: %w", apperr.ErrNotFound)
	}
	if err := s.store.Put(recipeCollection, last.id, last.doc); err != nil {
		return nil, err
	}
	s.notify("restored", last.id)
	return s.Get(ctx, last.id)
}

// SetFavorite sets or clears the favorite flag on a stored recipe. This is a
// field patch: the document is re-read, flipped, and written back.
func (s *Service) SetFavorite(ctx context.Context, id string, favorite bool) (*models.Recipe, error) {
	doc, err := s.store.Get(recipeCollection, id)
	if err != nil {
		return nil, err
	}
	doc["isFavorite"] = favorite
	if err := s.store.Put(recipeCollection, id, doc); err != nil {
		return nil, err
	}
	s.notify("updated", id)
	return s.Get(ctx, id)
}
