package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/wunjo/internal/recipeservice"
	"github.com/starford/wunjo/internal/shortlink"
	"github.com/starford/wunjo/internal/tags"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// imageDir is the directory recipe photo uploads are written to.
func NewRouter(svc *recipeservice.Service, registry *tags.Registry, shortener *shortlink.Client,
	authEnabled bool, token string, sseHandler http.Handler, imageDir string) chi.Router {
	h := NewHandler(svc, registry, shortener)
	ih := NewImageHandler(imageDir)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Recipe catalog CRUD + composite filter.
	r.Get("/recipes", h.ListRecipes)
	r.Post("/recipes", h.CreateRecipe)
	r.Post("/recipes/restore", h.RestoreRecipe)
	r.Get("/recipes/{id}", h.GetRecipe)
	r.Put("/recipes/{id}", h.UpdateRecipe)
	r.Delete("/recipes/{id}", h.DeleteRecipe)
	r.Put("/recipes/{id}/favorite", h.SetFavorite)
	r.Post("/recipes/{id}/share", h.ShareRecipe)

	// Tag registry.
	r.Get("/tags", h.GetTags)
	r.Post("/tags", h.AddTag)

	// Image uploads (auth-protected; serving is mounted publicly in entry).
	r.Post("/images", ih.Upload)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
