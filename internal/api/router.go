package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mossvale/mossvale/internal/api/handler"
	"github.com/mossvale/mossvale/internal/api/middleware"
	"github.com/mossvale/mossvale/internal/game"
	"github.com/mossvale/mossvale/internal/services/auth"
	"github.com/mossvale/mossvale/internal/services/catalog"
	"github.com/mossvale/mossvale/internal/services/players"
	"github.com/mossvale/mossvale/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	PlayersService *players.Service
	CatalogService *catalog.Service
	Hub            *ws.Hub
	Dispatcher     *game.Dispatcher
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.PlayersService)
	itemHandler := handler.NewItemHandler(cfg.CatalogService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Player routes (all require auth)
	playersRoutes := api.PathPrefix("/players").Subrouter()
	playersRoutes.Use(authMiddleware)
	playersRoutes.HandleFunc("", playerHandler.Create).Methods(http.MethodPost)
	playersRoutes.HandleFunc("", playerHandler.List).Methods(http.MethodGet)

	// Item catalog routes (require auth)
	itemsRoutes := api.PathPrefix("/items").Subrouter()
	itemsRoutes.Use(authMiddleware)
	itemsRoutes.HandleFunc("", itemHandler.List).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Game socket. Token checking happens inside ServeWS since browser
	// WebSocket clients pass the token as a query parameter.
	r.HandleFunc("/ws", ws.ServeWS(cfg.Hub, cfg.Dispatcher, cfg.AuthService, cfg.Logger))

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
