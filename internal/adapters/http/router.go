package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/netscan/netscan-api/internal/application"
)

// Handler is the HTTP adapter entrypoint for account and telemetry use-cases.
// Keeping only the application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// NewRouter registers the HTTP routes and middleware stack.
// Centralizing routes here ensures consistent auth and error behavior across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handler.register)
			r.Post("/login", handler.login)

			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Get("/me", handler.me)
				r.Post("/logout", handler.logout)
				r.Put("/profile", handler.updateProfile)
			})
		})

		r.Route("/network", func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Post("/save-result", handler.saveResult)
			r.Get("/history", handler.history)
			r.Get("/history/{id}", handler.historyEntry)
			r.Delete("/history", handler.clearHistory)
			r.Get("/stats", handler.stats)
		})
	})

	return r
}
