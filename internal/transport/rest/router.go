package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/miskai-core/internal/transport/middleware"
)

// NewRouter wires the handlers behind the request ID, logging and recovery
// middleware. Request bodies are capped at maxBody bytes.
func NewRouter(h *Handler, health *HealthHandler, log *slog.Logger, maxBody int64) http.Handler {
	r := chi.NewRouter()

	r.Get("/live", health.Live)
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(maxBody))

		r.Post("/channel", h.Channel)
		r.Post("/process", h.Process)

		r.Get("/dictionaries", h.ListDictionaries)
		r.Put("/dictionaries/{language}", h.LoadDictionary)
		r.Get("/dictionaries/{language}/words/{word}", h.LookupWord)
	})

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
	)(r)
}
