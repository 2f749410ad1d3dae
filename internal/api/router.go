package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/coach"
	"github.com/joestump/cuecard/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Coach  *coach.Service
	Events *store.EventStore
	Log    *zap.Logger
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(jsonContentType)

	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	cards := &cardsAPIHandler{coach: deps.Coach, log: log}
	r.Post("/cards", cards.Create)
	r.Post("/cards/parse", cards.Parse)
	r.Post("/prompts", cards.Prompt)

	stats := &statsAPIHandler{events: deps.Events, log: log}
	r.Get("/stats", stats.Get)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
