package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chefassist/marketrun/internal/apperr"
	"github.com/chefassist/marketrun/internal/listservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *listservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *listservice.Service) *Handler {
	return &Handler{svc: svc}
}

// recipeName extracts the recipe name from the URL (everything after
// /list/recipes/). Names may contain spaces or slashes, so encoded forms
// from clients are unescaped.
func recipeName(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// itemKey extracts the item key path parameter, unescaping encoded spaces
// ("olive%20oil").
func itemKey(r *http.Request) string {
	raw := chi.URLParam(r, "key")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// writeServiceError maps service errors onto API responses.
func writeServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody("invalid payload"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// GetList handles GET /list. The response carries an ETag over the snapshot
// so clients holding a fresh copy get 304 instead of the full body.
func (h *Handler) GetList(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Get(r.Context(), UserFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err, "get list")
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		slog.Error("get list encode failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	sum := sha256.Sum256(payload)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
	_, _ = w.Write([]byte("\n"))
}

// AddRecipe handles POST /list/recipes. Adding a recipe that is already on
// the list replaces its prior contribution.
func (h *Handler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AddRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	snap, err := h.svc.AddRecipe(r.Context(), UserFrom(r.Context()), req.Name, req.Ingredients)
	if err != nil {
		writeServiceError(w, err, "add recipe")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// RemoveRecipe handles DELETE /list/recipes/*.
func (h *Handler) RemoveRecipe(w http.ResponseWriter, r *http.Request) {
	name := recipeName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("recipe name is required"))
		return
	}
	snap, err := h.svc.RemoveRecipe(r.Context(), UserFrom(r.Context()), name)
	if err != nil {
		writeServiceError(w, err, "remove recipe")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// EditItem handles PATCH /list/items/{key}.
func (h *Handler) EditItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	key := itemKey(r)
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("item key is required"))
		return
	}
	var req EditItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	snap, err := h.svc.EditItem(r.Context(), UserFrom(r.Context()), key, req.toOverride())
	if err != nil {
		writeServiceError(w, err, "edit item")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteItem handles DELETE /list/items/{key}.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	key := itemKey(r)
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("item key is required"))
		return
	}
	snap, err := h.svc.DeleteItem(r.Context(), UserFrom(r.Context()), key)
	if err != nil {
		writeServiceError(w, err, "delete item")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// SetPantry handles PUT /list/pantry.
func (h *Handler) SetPantry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req PantryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	snap, err := h.svc.SetPantry(r.Context(), UserFrom(r.Context()), req.Items)
	if err != nil {
		writeServiceError(w, err, "set pantry")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ClearList handles DELETE /list.
func (h *Handler) ClearList(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Clear(r.Context(), UserFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err, "clear list")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
