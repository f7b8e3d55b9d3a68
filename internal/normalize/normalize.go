// Package normalize reconciles stored recipe documents with the canonical
// in-memory shape. The recipe schema drifted across versions: ingredients
// and directions were written sometimes as ordered sequences, sometimes as a
// single newline-delimited blob, sometimes not at all. Instead of
// type-sniffing at every call site, all consumers go through ToCanonical and
// ToRecord; after that only the canonical shape circulates.
//
// Every function here is total: malformed or missing fields are absorbed by
// defaulting, never reported as errors, because the upstream data may have
// been written by any earlier schema version.
package normalize

import (
	"strings"

	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/store"
)

// ToCanonical converts a raw stored document into a canonical Recipe.
func ToCanonical(doc store.Document) models.Recipe {
	serving := Text(doc["servingSize"])
	if serving == "" {
		// Older documents used "servings" for the same field.
		serving = Text(doc["servings"])
	}
	return models.Recipe{
		ID:          Text(doc["id"]),
		Name:        Text(doc["name"]),
		Course:      StringSlice(doc["course"]),
		Categories:  StringSlice(doc["categories"]),
		ServingSize: serving,
		PrepTime:    Text(doc["prepTime"]),
		CookTime:    Text(doc["cookTime"]),
		Ingredients: Lines(doc["ingredients"]),
		Directions:  Lines(doc["directions"]),
		Utensils:    Lines(doc["utensils"]),
		Notes:       Text(doc["notes"]),
		Nutrition:   NutritionMap(doc["nutrition"]),
		ImageURL:    Text(doc["imageUrl"]),
		Source:      Text(doc["source"]),
		IsFavorite:  Flag(doc["isFavorite"]),
	}
}

// ToRecord converts a canonical Recipe into its storable document. Sequences
// are written as sequences, never re-joined into a blob, so the ambiguity
// that ToCanonical exists to repair is not reintroduced. Nil slices are
// re-coerced to empty ones before the write: the store never receives a
// non-sequence for ingredients or directions.
func ToRecord(r models.Recipe) store.Document {
	nutrition := r.Nutrition
	if nutrition == nil {
		nutrition = map[string]string{}
	}
	return store.Document{
		"name":        r.Name,
		"course":      nonNil(r.Course),
		"categories":  nonNil(r.Categories),
		"servingSize": r.ServingSize,
		"prepTime":    r.PrepTime,
		"cookTime":    r.CookTime,
		"ingredients": nonNil(r.Ingredients),
		"directions":  nonNil(r.Directions),
		"utensils":    nonNil(r.Utensils),
		"notes":       r.Notes,
		"nutrition":   nutrition,
		"imageUrl":    r.ImageURL,
		"source":      r.Source,
		"isFavorite":  r.IsFavorite,
	}
}

// Lines coerces a drifted ingredients/directions/utensils value to an
// ordered sequence of lines:
//
//   - a sequence is kept as-is (string elements; anything else is dropped)
//   - a string is split on newlines, each piece trimmed, empty pieces
//     dropped — a single-line string therefore becomes a one-element
//     sequence, and a whitespace-only string becomes the empty sequence
//   - any other shape (absent, null, number, object) yields the empty
//     sequence
func Lines(v any) []string {
	switch x := v.(type) {
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitLines(x)
	default:
		return []string{}
	}
}

// StringSlice coerces a course/categories value to a string slice. Unlike
// Lines, a bare string is not split: tag fields were never stored as blobs,
// so any non-sequence shape defaults to empty.
func StringSlice(v any) []string {
	switch x := v.(type) {
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// Text coerces a scalar field to a string, defaulting to empty when missing
// or of an unexpected type.
func Text(v any) string {
	s, _ := v.(string)
	return s
}

// Flag coerces a boolean field, defaulting to false.
func Flag(v any) bool {
	b, _ := v.(bool)
	return b
}

// NutritionMap coerces a nutrition value to a string map limited to the
// models.NutrientKeys vocabulary. Unknown keys and non-string values inside
// a stored map are dropped; any non-map shape yields an empty map.
func NutritionMap(v any) map[string]string {
	out := map[string]string{}
	switch x := v.(type) {
	case map[string]string:
		for k, val := range x {
			if nutrientKey(k) {
				out[k] = val
			}
		}
	case map[string]any:
		for k, val := range x {
			s, ok := val.(string)
			if ok && nutrientKey(k) {
				out[k] = s
			}
		}
	}
	return out
}

func nutrientKey(k string) bool {
	for _, known := range models.NutrientKeys {
		if k == known {
			return true
		}
	}
	return false
}

// SplitDuration reconstructs the separate hour/minute editing fields from a
// stored time string. A value containing "hr" yields its leading token as
// the hour component; otherwise a value containing "min" yields its leading
// token as the minute component; anything else yields two empty components.
func SplitDuration(s string) (hours, minutes string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}
	switch {
	case strings.Contains(s, "hr"):
		return fields[0], ""
	case strings.Contains(s, "min"):
		return "", fields[0]
	default:
		return "", ""
	}
}

// JoinDuration collapses the hour/minute editing fields back into a single
// stored string, preferring hours: "2" hours and "30" minutes yields "2 hr".
// The collapse is lossy ("1 hr 30 min" is not representable); that is an
// accepted limitation of the editing fields, not something to repair here.
func JoinDuration(hours, minutes string) string {
	switch {
	case hours != "":
		return hours + " hr"
	case minutes != "":
		return minutes + " min"
	default:
		return ""
	}
}

func splitLines(s string) []string {
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
