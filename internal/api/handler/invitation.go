package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yatishgautam00/spy-game-local/internal/api/middleware"
	"github.com/yatishgautam00/spy-game-local/internal/api/request"
	"github.com/yatishgautam00/spy-game-local/internal/api/response"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/services/invitation"
	"github.com/yatishgautam00/spy-game-local/internal/session"
)

// InvitationHandler handles invitation endpoints
type InvitationHandler struct {
	facade      *session.Facade
	invitations *invitation.Service
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(facade *session.Facade, invitations *invitation.Service) *InvitationHandler {
	return &InvitationHandler{
		facade:      facade,
		invitations: invitations,
	}
}

// Invite handles POST /api/v1/games/{game_id}/invitations
func (h *InvitationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.InviteeIDs) == 0 {
		WriteError(w, NewInvalidRequestError("invitee_ids is required"))
		return
	}

	inviteeIDs := make([]model.UserID, len(req.InviteeIDs))
	for i, id := range req.InviteeIDs {
		inviteeIDs[i] = model.UserID(id)
	}

	_, err := h.facade.Apply(r.Context(), gameID, user.ID, session.InviteIntent{InviteeIDs: inviteeIDs})
	if err != nil {
		WriteError(w, err)
		return
	}

	invs, err := h.invitations.ForGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.InvitationsFromModel(invs))
}

// ListForGame handles GET /api/v1/games/{game_id}/invitations
func (h *InvitationHandler) ListForGame(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	invs, err := h.invitations.ForGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.InvitationsFromModel(invs))
}

// ListMine handles GET /api/v1/invitations. Returns the caller's pending
// invitations.
func (h *InvitationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	invs, err := h.invitations.PendingFor(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.InvitationsFromModel(invs))
}

// Respond handles POST /api/v1/invitations/{invitation_id}/respond
func (h *InvitationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	invitationID := model.InvitationID(mux.Vars(r)["invitation_id"])

	var req request.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := h.facade.RespondToInvitation(r.Context(), invitationID, user.ID, req.Accept)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateForViewer(game, user.ID))
}
