package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashdeck/internal/api"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
	"github.com/rs/cors"
)

// setupRouter creates the chi router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", apiMiddleware.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}).Handler)

	authHandler := api.NewAuthHandler(app.accounts, app.logger)
	flashcardHandler := api.NewFlashcardHandler(app.generations, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessions, app.logger)
	settingsHandler := api.NewSettingsHandler(app.settings)
	profileHandler := api.NewProfileHandler(app.profiles)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)

			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)

			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)

			r.Post("/flashcards/generate", flashcardHandler.Generate)
			r.Post("/flashcards/export", flashcardHandler.Export)

			r.Get("/sessions", sessionHandler.List)
			r.Get("/sessions/{id}/cards", sessionHandler.Cards)
			r.Get("/sessions/{id}/export", sessionHandler.Export)
			r.Delete("/sessions/{id}", sessionHandler.Delete)
		})
	})

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	r.Get("/health", api.NewHealthHandler(pinger).Check)

	return r
}
