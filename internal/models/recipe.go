// Package models defines the domain types for Wunjo.
package models

// NutrientKeys is the fixed vocabulary of the nutrition map. Keys outside
// this set are dropped when a recipe is normalized.
var NutrientKeys = []string{
	"calories",
	"fat",
	"saturatedFat",
	"cholesterol",
	"sodium",
	"carbs",
	"fiber",
	"sugar",
	"protein",
}

// Recipe is the canonical in-memory recipe shape. Every recipe read from the
// store is coerced into this form regardless of which schema version wrote
// it: Ingredients, Directions and Utensils are always ordered sequences
// (never a newline-delimited blob), Course and Categories are always string
// slices, Nutrition is always a non-nil map.
type Recipe struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Course      []string          `json:"course"`
	Categories  []string          `json:"categories"`
	ServingSize string            `json:"servingSize"`
	PrepTime    string            `json:"prepTime"`
	CookTime    string            `json:"cookTime"`
	Ingredients []string          `json:"ingredients"`
	Directions  []string          `json:"directions"`
	Utensils    []string          `json:"utensils"`
	Notes       string            `json:"notes"`
	Nutrition   map[string]string `json:"nutrition"`
	ImageURL    string            `json:"imageUrl"`
	Source      string            `json:"source"`
	IsFavorite  bool              `json:"isFavorite"`
}

// Tags is the shared vocabulary of course and category tags offered across
// all recipes. Both sets grow by union only; this subsystem never removes a
// tag once added.
type Tags struct {
	Courses    []string `json:"courses"`
	Categories []string `json:"categories"`
}
