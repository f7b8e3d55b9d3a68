// Package filter computes the visible subset of the recipe catalog for a
// composite query: a free-text term plus optional course and category tags.
package filter

import (
	"strings"

	"github.com/starford/wunjo/internal/models"
)

// Query holds the filter criteria. Empty fields are inactive; all active
// criteria must hold simultaneously (conjunction).
type Query struct {
	Term     string
	Course   string
	Category string
}

// IsZero reports whether no criteria are active.
func (q Query) IsZero() bool {
	return q.Term == "" && q.Course == "" && q.Category == ""
}

// Apply returns the recipes matching the query, preserving their relative
// order. It is pure: the input slice is never mutated or reordered, and an
// empty result simply means nothing matched.
func Apply(recipes []models.Recipe, q Query) []models.Recipe {
	if q.IsZero() {
		return recipes
	}
	term := strings.ToLower(q.Term)
	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if q.Course != "" && !contains(r.Course, q.Course) {
			continue
		}
		if q.Category != "" && !contains(r.Categories, q.Category) {
			continue
		}
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesTerm reports whether the lower-cased term occurs as a substring in
// the recipe name, any ingredient line, or any course/category tag.
func matchesTerm(r models.Recipe, term string) bool {
	if strings.Contains(strings.ToLower(r.Name), term) {
		return true
	}
	return containsFold(r.Ingredients, term) ||
		containsFold(r.Course, term) ||
		containsFold(r.Categories, term)
}

// contains is an exact, case-sensitive membership test (tag matching).
func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// containsFold reports whether any element contains term case-insensitively.
func containsFold(values []string, term string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
