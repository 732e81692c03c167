package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yatishgautam00/spy-game-local/internal/api/middleware"
	"github.com/yatishgautam00/spy-game-local/internal/api/request"
	"github.com/yatishgautam00/spy-game-local/internal/api/response"
	"github.com/yatishgautam00/spy-game-local/internal/services/identity"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
)

// UserHandler handles user-related endpoints
type UserHandler struct {
	identityService *identity.Service
	storage         storage.Storage
}

// NewUserHandler creates a new user handler
func NewUserHandler(identityService *identity.Service, storage storage.Storage) *UserHandler {
	return &UserHandler{
		identityService: identityService,
		storage:         storage,
	}
}

// Register handles POST /api/v1/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	session, err := h.identityService.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.identityService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user, true))
}

// List handles GET /api/v1/users. The roster of registered users is what
// hosts pick invitees from.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.storage.ListUsers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.User, 0, len(users))
	for _, u := range users {
		out = append(out, response.UserFromModel(u, false))
	}
	response.JSON(w, http.StatusOK, out)
}
