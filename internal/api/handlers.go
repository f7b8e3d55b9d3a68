package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/filter"
	"github.com/starford/wunjo/internal/recipeservice"
	"github.com/starford/wunjo/internal/shortlink"
	"github.com/starford/wunjo/internal/tags"
)

const maxBodyBytes = 1 << 20 // 1 MB

// Handler holds API route handlers.
type Handler struct {
	svc       *recipeservice.Service
	registry  *tags.Registry
	shortener *shortlink.Client
}

// NewHandler creates a new Handler. shortener may be nil, in which case the
// share endpoint reports the feature as unavailable.
func NewHandler(svc *recipeservice.Service, registry *tags.Registry, shortener *shortlink.Client) *Handler {
	return &Handler{svc: svc, registry: registry, shortener: shortener}
}

// writeError maps service errors onto HTTP statuses: absent documents are
// 404, rejected input is 400, failed outbound calls are 502, the rest 500.
func writeError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrMalformedInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrRemote):
		slog.Error(logMsg, slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("upstream service failed"))
	default:
		slog.Error(logMsg, slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListRecipes handles GET /recipes?q=&course=&category=.
// All three criteria are optional and combine conjunctively.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := filter.Query{
		Term:     params.Get("q"),
		Course:   params.Get("course"),
		Category: params.Get("category"),
	}
	recipes, err := h.svc.List(r.Context(), q)
	if err != nil {
		writeError(w, err, "list recipes failed")
		return
	}
	writeJSON(w, http.StatusOK, RecipeListResponse{Recipes: recipes, Total: len(recipes)})
}

// GetRecipe handles GET /recipes/{id}.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recipe, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "get recipe failed")
		return
	}
	writeJSON(w, http.StatusOK, newRecipeDetail(*recipe))
}

// CreateRecipe handles POST /recipes.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req RecipePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	recipe, err := h.svc.Create(r.Context(), req.toRecipe())
	if err != nil {
		writeError(w, err, "create recipe failed")
		return
	}
	writeJSON(w, http.StatusCreated, newRecipeDetail(*recipe))
}

// UpdateRecipe handles PUT /recipes/{id}. The stored document is fully
// replaced; the last write wins.
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	id := chi.URLParam(r, "id")
	var req RecipePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	recipe, err := h.svc.Update(r.Context(), id, req.toRecipe())
	if err != nil {
		writeError(w, err, "update recipe failed")
		return
	}
	writeJSON(w, http.StatusOK, newRecipeDetail(*recipe))
}

// DeleteRecipe handles DELETE /recipes/{id}. The deleted document goes into
// the single-slot undo buffer served by RestoreRecipe.
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err, "delete recipe failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestoreRecipe handles POST /recipes/restore (undo of the last delete).
func (h *Handler) RestoreRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.svc.Restore(r.Context())
	if err != nil {
		writeError(w, err, "restore recipe failed")
		return
	}
	writeJSON(w, http.StatusOK, newRecipeDetail(*recipe))
}

// SetFavorite handles PUT /recipes/{id}/favorite.
func (h *Handler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	id := chi.URLParam(r, "id")
	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	recipe, err := h.svc.SetFavorite(r.Context(), id, req.Favorite)
	if err != nil {
		writeError(w, err, "set favorite failed")
		return
	}
	writeJSON(w, http.StatusOK, newRecipeDetail(*recipe))
}

// GetTags handles GET /tags.
func (h *Handler) GetTags(w http.ResponseWriter, r *http.Request) {
	t, err := h.registry.Get()
	if err != nil {
		writeError(w, err, "get tags failed")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// AddTag handles POST /tags (set-union insert into courses or categories).
func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req AddTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.registry.Add(req.Field, req.Value); err != nil {
		writeError(w, err, "add tag failed")
		return
	}
	t, err := h.registry.Get()
	if err != nil {
		writeError(w, err, "get tags failed")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// ShareRecipe handles POST /recipes/{id}/share: builds the public view URL
// and asks the shortener for a short link. A shortener failure is reported
// to the caller, not retried.
func (h *Handler) ShareRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	id := chi.URLParam(r, "id")
	if h.shortener == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("link sharing is not configured"))
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		writeError(w, err, "share recipe failed")
		return
	}

	var req ShareRequest
	// Body is optional; decode errors on an empty body are fine.
	_ = json.NewDecoder(r.Body).Decode(&req)

	base := req.BaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	longURL := fmt.Sprintf("%s/recipes/%s", base, id)

	shortURL, err := h.shortener.Shorten(r.Context(), longURL)
	if err != nil {
		writeError(w, err, "shorten url failed")
		return
	}
	writeJSON(w, http.StatusOK, ShareResponse{ShortURL: shortURL})
}
