package presets

import (
	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/kiekky-match/internal/auth"
)

func RegisterRoutes(router chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	router.Route("/api/v1/filters/presets", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", handler.ListPresets)
		r.Post("/", handler.SavePreset)
		r.Get("/{id}", handler.GetPreset)
		r.Post("/{id}/apply", handler.ApplyPreset)
		r.Delete("/{id}", handler.DeletePreset)
	})
}
