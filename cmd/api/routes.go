package main

import (
	"log"
	"net/http"

	httphandlers "cardvault/internal/interfaces/http"
	"cardvault/internal/shared/config"
	"cardvault/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)
	mux.HandleFunc("/api/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/signup", deps.AuthHandler.HandleSignup)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/auth/me", authMiddleware(http.HandlerFunc(deps.AuthHandler.HandleMe)))
	mux.Handle("/api/cards", authMiddleware(http.HandlerFunc(deps.CardHandler.HandleCards)))
	mux.Handle("/api/cards/{id}", authMiddleware(http.HandlerFunc(deps.CardHandler.HandleCardByID)))
	mux.Handle("/api/binders", authMiddleware(http.HandlerFunc(deps.BinderHandler.HandleBinders)))
	mux.Handle("/api/binders/{id}", authMiddleware(http.HandlerFunc(deps.BinderHandler.HandleBinderByID)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	return handler
}
