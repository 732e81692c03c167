package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yatishgautam00/spy-game-local/internal/api/middleware"
	"github.com/yatishgautam00/spy-game-local/internal/api/request"
	"github.com/yatishgautam00/spy-game-local/internal/api/response"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/session"
	"github.com/yatishgautam00/spy-game-local/internal/sse"
)

// GameHandler handles game endpoints
type GameHandler struct {
	facade     *session.Facade
	hubManager *sse.HubManager
}

// NewGameHandler creates a new game handler
func NewGameHandler(facade *session.Facade, hubManager *sse.HubManager) *GameHandler {
	return &GameHandler{
		facade:     facade,
		hubManager: hubManager,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	game, err := h.facade.CreateGame(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateForViewer(game, user.ID))
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	game, err := h.facade.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateForViewer(game, user.ID))
}

// Start handles POST /api/v1/games/{game_id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.StartGameRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
	}

	intent := session.StartGameIntent{}
	if req.SpyWord != "" || req.VillagerWord != "" {
		if req.SpyWord == "" || req.VillagerWord == "" {
			WriteError(w, NewInvalidRequestError("spy_word and villager_word must be set together"))
			return
		}
		intent.Pair = &model.WordPair{SpyWord: req.SpyWord, VillagerWord: req.VillagerWord}
	}

	game, err := h.facade.Apply(r.Context(), gameID, user.ID, intent)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateForViewer(game, user.ID))
}

// StartVoting handles POST /api/v1/games/{game_id}/voting
func (h *GameHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	game, err := h.facade.Apply(r.Context(), gameID, user.ID, session.StartVotingIntent{})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateForViewer(game, user.ID))
}

// Vote handles POST /api/v1/games/{game_id}/votes
func (h *GameHandler) Vote(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TargetID == "" {
		WriteError(w, NewInvalidRequestError("target_id is required"))
		return
	}

	game, err := h.facade.Apply(r.Context(), gameID, user.ID, session.CastVoteIntent{TargetID: model.UserID(req.TargetID)})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateForViewer(game, user.ID))
}

// Reset handles POST /api/v1/games/{game_id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.StartGameRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
	}

	intent := session.ResetGameIntent{}
	if req.SpyWord != "" || req.VillagerWord != "" {
		if req.SpyWord == "" || req.VillagerWord == "" {
			WriteError(w, NewInvalidRequestError("spy_word and villager_word must be set together"))
			return
		}
		intent.Pair = &model.WordPair{SpyWord: req.SpyWord, VillagerWord: req.VillagerWord}
	}

	game, err := h.facade.Apply(r.Context(), gameID, user.ID, intent)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateForViewer(game, user.ID))
}

// Events handles GET /api/v1/games/{game_id}/events, the SSE stream
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	// The game must exist before we hold a stream open for it
	if _, err := h.facade.GetGame(r.Context(), gameID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(gameID)
	sse.ServeSSE(w, r, hub, user.ID)
}
