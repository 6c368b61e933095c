package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chessladder/chessladder/internal/api/apierr"
	"github.com/chessladder/chessladder/internal/api/handler"
	"github.com/chessladder/chessladder/internal/dependencies/clock"
	"github.com/chessladder/chessladder/internal/middleware"
	"github.com/chessladder/chessladder/internal/services/rating"
	"github.com/chessladder/chessladder/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	Engine *rating.Engine
	Stats  *stats.Service
	Clock  clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Engine, cfg.Stats)
	gameHandler := handler.NewGameHandler(cfg.Engine, cfg.Stats, cfg.Clock)
	statsHandler := handler.NewStatsHandler(cfg.Stats)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, panicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes
	api.HandleFunc("/players", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{name}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{name}/trajectory", playerHandler.Trajectory).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games", gameHandler.Record).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/recent", gameHandler.Recent).Methods(http.MethodGet)

	// Aggregation routes
	api.HandleFunc("/leaderboard", statsHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/stats", statsHandler.Aggregate).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
