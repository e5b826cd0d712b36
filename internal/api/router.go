package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chefassist/marketrun/internal/listservice"
	"github.com/chefassist/marketrun/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted.
// jwtEnabled controls whether Bearer token auth is enforced.
// broker, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *listservice.Service, jwtEnabled bool, secret string, broker *sse.Broker) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(jwtEnabled, secret))

	// Grocery list.
	r.Get("/list", h.GetList)
	r.Delete("/list", h.ClearList)

	// Recipe contributions.
	r.Post("/list/recipes", h.AddRecipe)
	r.Delete("/list/recipes/*", h.RemoveRecipe)

	// Aggregated items.
	r.Patch("/list/items/{key}", h.EditItem)
	r.Delete("/list/items/{key}", h.DeleteItem)

	// Pantry staples.
	r.Put("/list/pantry", h.SetPantry)

	// SSE change feed (protected by the same auth middleware).
	if broker != nil {
		r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
			broker.Serve(w, r, UserFrom(r.Context()))
		})
	}

	return r
}
