package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yatishgautam00/spy-game-local/internal/api/handler"
	"github.com/yatishgautam00/spy-game-local/internal/api/middleware"
	"github.com/yatishgautam00/spy-game-local/internal/services/identity"
	"github.com/yatishgautam00/spy-game-local/internal/services/invitation"
	"github.com/yatishgautam00/spy-game-local/internal/session"
	"github.com/yatishgautam00/spy-game-local/internal/sse"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	IdentityService   *identity.Service
	Facade            *session.Facade
	InvitationService *invitation.Service
	HubManager        *sse.HubManager
	Storage           storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.IdentityService, cfg.Storage)
	gameHandler := handler.NewGameHandler(cfg.Facade, cfg.HubManager)
	invitationHandler := handler.NewInvitationHandler(cfg.Facade, cfg.InvitationService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// User routes (no auth required for registering/logging in)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	// Protected user routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)
	users.HandleFunc("", userHandler.List).Methods(http.MethodGet)

	// Invitation routes addressed to the caller
	invitations := api.PathPrefix("/invitations").Subrouter()
	invitations.Use(authMiddleware)
	invitations.HandleFunc("", invitationHandler.ListMine).Methods(http.MethodGet)
	invitations.HandleFunc("/{invitation_id}/respond", invitationHandler.Respond).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/invitations", invitationHandler.Invite).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/invitations", invitationHandler.ListForGame).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/voting", gameHandler.StartVoting).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/votes", gameHandler.Vote).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
