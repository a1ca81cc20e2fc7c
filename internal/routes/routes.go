package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/secure-profile-hub/internal/handlers"
	"github.com/AnshRaj112/secure-profile-hub/internal/middleware"
)

func SetupRoutes(r chi.Router, auth *handlers.AuthHandler, tokens middleware.TokenIdentifier, logger *slog.Logger) {
	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)

		r.With(middleware.RequireAuth(tokens, logger)).Get("/profile", auth.Profile)
	})
}
