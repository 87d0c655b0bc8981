// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eastfallsrec/matchbook/internal/api"
	"github.com/eastfallsrec/matchbook/internal/api/auth"
	"github.com/eastfallsrec/matchbook/internal/api/roster"
	"github.com/eastfallsrec/matchbook/internal/api/schedule"
	"github.com/eastfallsrec/matchbook/internal/api/stats"
	"github.com/eastfallsrec/matchbook/internal/config"
	"github.com/eastfallsrec/matchbook/internal/refresh"
	"github.com/eastfallsrec/matchbook/internal/store"
	"github.com/eastfallsrec/matchbook/internal/templates/layouts"
)

func newServer(cfg *config.Config, dataStore store.Store, hub *refresh.Hub) *http.Server {
	router := http.NewServeMux()

	// Handlers share the injected store; selected once at startup.
	auth.InitHandlers(cfg, dataStore)
	roster.InitHandlers(dataStore)
	schedule.InitHandlers(dataStore, hub)
	stats.InitHandlers(dataStore)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithSessionGate,
		api.WithRequestID,
		api.WithContentType,
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Main page handler
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		component := layouts.Page("Welcome", nil)
		component.Render(r.Context(), w)
	})

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth routes
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /login", auth.HandleLogin)
	mux.HandleFunc("POST /logout", auth.HandleLogout)

	// Club section (session-gated by middleware)
	mux.HandleFunc("GET /club", roster.HandleRosterPage)
	mux.HandleFunc("GET /club/schedule", schedule.HandleSchedulePage)
	mux.HandleFunc("GET /club/events", schedule.HandleEvents)
	mux.HandleFunc("GET /club/stats", stats.HandleStatsPage)

	// Score edit routes
	mux.HandleFunc("POST /api/v1/matches/{id}/score", schedule.HandleSetScore)
	mux.HandleFunc("POST /api/v1/matches/{id}/clear", schedule.HandleClearScore)

	// Static file handling with environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		// Default to the build directory if not specified
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
