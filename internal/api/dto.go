package api

import (
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/normalize"
)

// RecipePayload is the request body for creating or updating a recipe. Time
// fields may arrive either as the stored string ("2 hr") or as the split
// hour/minute editing fields; the split fields are used only when the stored
// string is absent, and collapse with hours taking precedence over minutes.
type RecipePayload struct {
	Name        string            `json:"name"`
	Course      []string          `json:"course"`
	Categories  []string          `json:"categories"`
	ServingSize string            `json:"servingSize"`
	PrepTime    string            `json:"prepTime"`
	CookTime    string            `json:"cookTime"`
	PrepHours   string            `json:"prepHours"`
	PrepMinutes string            `json:"prepMinutes"`
	CookHours   string            `json:"cookHours"`
	CookMinutes string            `json:"cookMinutes"`
	Ingredients []string          `json:"ingredients"`
	Directions  []string          `json:"directions"`
	Utensils    []string          `json:"utensils"`
	Notes       string            `json:"notes"`
	Nutrition   map[string]string `json:"nutrition"`
	ImageURL    string            `json:"imageUrl"`
	Source      string            `json:"source"`
	IsFavorite  bool              `json:"isFavorite"`
}

// toRecipe builds the canonical Recipe from the payload.
func (p RecipePayload) toRecipe() models.Recipe {
	prep := p.PrepTime
	if prep == "" {
		prep = normalize.JoinDuration(p.PrepHours, p.PrepMinutes)
	}
	cook := p.CookTime
	if cook == "" {
		cook = normalize.JoinDuration(p.CookHours, p.CookMinutes)
	}
	return models.Recipe{
		Name:        p.Name,
		Course:      p.Course,
		Categories:  p.Categories,
		ServingSize: p.ServingSize,
		PrepTime:    prep,
		CookTime:    cook,
		Ingredients: p.Ingredients,
		Directions:  p.Directions,
		Utensils:    p.Utensils,
		Notes:       p.Notes,
		Nutrition:   p.Nutrition,
		ImageURL:    p.ImageURL,
		Source:      p.Source,
		IsFavorite:  p.IsFavorite,
	}
}

// RecipeDetail is the response shape for a single recipe: the canonical form
// plus the split hour/minute fields reconstructed for the editing UI.
type RecipeDetail struct {
	models.Recipe
	PrepHours   string `json:"prepHours"`
	PrepMinutes string `json:"prepMinutes"`
	CookHours   string `json:"cookHours"`
	CookMinutes string `json:"cookMinutes"`
}

func newRecipeDetail(r models.Recipe) RecipeDetail {
	d := RecipeDetail{Recipe: r}
	d.PrepHours, d.PrepMinutes = normalize.SplitDuration(r.PrepTime)
	d.CookHours, d.CookMinutes = normalize.SplitDuration(r.CookTime)
	return d
}

// RecipeListResponse wraps a filtered catalog listing.
type RecipeListResponse struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}

// AddTagRequest is the request body for growing a tag vocabulary.
type AddTagRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// FavoriteRequest is the request body for setting the favorite flag.
type FavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// ShareRequest optionally overrides the public base URL used to build the
// long link before shortening.
type ShareRequest struct {
	BaseURL string `json:"baseUrl"`
}

// ShareResponse carries the minted short link.
type ShareResponse struct {
	ShortURL string `json:"shortUrl"`
}

// ImageUploadResponse is returned after a successful image upload.
type ImageUploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}
