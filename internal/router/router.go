// Package router sets up all HTTP routes and middleware chains for the
// portfolio API. Public reads and beacons stay open; everything that
// mutates content or reads the inbox sits behind the bearer-token gate.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"musubi/internal/handlers"
	"musubi/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	tokens middleware.TokenVerifier,
	auth *handlers.Auth,
	config *handlers.Config,
	projects *handlers.Projects,
	messages *handlers.Messages,
	analytics *handlers.Analytics,
	allowedOrigins []string,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireToken := middleware.RequireToken(tokens)

	// Health check.
	r.Get("/health", healthHandler)

	// Authentication.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/verify-totp", auth.VerifyTOTP)
		r.Get("/verify-token", auth.VerifyToken)
	})

	// Site configuration: public read, gated wholesale replace.
	r.Route("/config", func(r chi.Router) {
		r.Get("/", config.Get)
		r.With(requireToken).Put("/", config.Put)
	})

	// Projects: public list, gated writes.
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", projects.List)
		r.Group(func(r chi.Router) {
			r.Use(requireToken)
			r.Post("/", projects.Create)
			r.Put("/{id}", projects.Update)
			r.Delete("/{id}", projects.Delete)
		})
	})

	// Messages: public rate-limited submit, gated inbox.
	r.Route("/messages", func(r chi.Router) {
		r.Post("/", messages.Create)
		r.Group(func(r chi.Router) {
			r.Use(requireToken)
			r.Get("/", messages.List)
			r.Patch("/{id}/read", messages.SetRead)
			r.Delete("/{id}", messages.Delete)
		})
	})

	// Analytics: public beacons, gated rollup.
	r.Route("/analytics", func(r chi.Router) {
		r.Post("/pageview", analytics.PageView)
		r.Post("/project-click", analytics.ProjectClick)
		r.With(requireToken).Get("/stats", analytics.Stats)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
