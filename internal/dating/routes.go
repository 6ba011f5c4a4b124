package dating

import (
	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/kiekky-match/internal/auth"
)

func RegisterRoutes(router chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	router.Route("/api/v1/matches", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/search", handler.SearchMatches)
		r.Post("/recommendations", handler.GetRecommendations)
	})
}
