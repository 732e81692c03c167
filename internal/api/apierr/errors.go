package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/services/identity"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeInvitationNotFound  = "INVITATION_NOT_FOUND"
	CodeNotHost             = "NOT_HOST"
	CodeNotInGame           = "NOT_IN_GAME"
	CodeNotInvitee          = "NOT_INVITEE"
	CodeSelfInvite          = "SELF_INVITE"
	CodeDuplicateInvite     = "DUPLICATE_INVITE"
	CodeAlreadyResolved     = "ALREADY_RESOLVED"
	CodeInvitesPending      = "INVITES_PENDING"
	CodeGameAlreadyStarted  = "GAME_ALREADY_STARTED"
	CodeGameNotStarted      = "GAME_NOT_STARTED"
	CodeGameNotEnded        = "GAME_NOT_ENDED"
	CodeGameOver            = "GAME_OVER"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeAlreadyVoting       = "ALREADY_VOTING"
	CodeNotVoting           = "NOT_VOTING"
	CodeAlreadyVoted        = "ALREADY_VOTED"
	CodeInvalidVoter        = "INVALID_VOTER"
	CodeInvalidTarget       = "INVALID_TARGET"
	CodeNoWordPairs         = "NO_WORD_PAIRS"
	CodeContention          = "CONTENTION"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrInvitationNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeInvitationNotFound, "Invitation not found"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrNotInGame):
		return &httpError{http.StatusForbidden, APIError{CodeNotInGame, "You are not a player in this game"}}
	case errors.Is(err, model.ErrNotInvitee):
		return &httpError{http.StatusForbidden, APIError{CodeNotInvitee, "This invitation is not addressed to you"}}
	case errors.Is(err, model.ErrSelfInvite):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfInvite, "You cannot invite yourself"}}
	case errors.Is(err, model.ErrDuplicateInvite):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateInvite, "User already has a pending invitation"}}
	case errors.Is(err, model.ErrAlreadyResolved):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyResolved, "Invitation has already been resolved"}}
	case errors.Is(err, model.ErrInvitesPending):
		return &httpError{http.StatusConflict, APIError{CodeInvitesPending, "Invitations are still pending"}}
	case errors.Is(err, model.ErrGameAlreadyStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyStarted, "Game has already started"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game has not started"}}
	case errors.Is(err, model.ErrGameNotEnded):
		return &httpError{http.StatusConflict, APIError{CodeGameNotEnded, "Game has not ended"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is over"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrAlreadyVoting):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyVoting, "A voting round is already open"}}
	case errors.Is(err, model.ErrNotVoting):
		return &httpError{http.StatusConflict, APIError{CodeNotVoting, "No voting round is open"}}
	case errors.Is(err, model.ErrAlreadyVoted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyVoted, "You have already voted this round"}}
	case errors.Is(err, model.ErrInvalidVoter):
		return &httpError{http.StatusForbidden, APIError{CodeInvalidVoter, "You cannot vote in this round"}}
	case errors.Is(err, model.ErrInvalidTarget):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTarget, "Invalid vote target"}}
	case errors.Is(err, model.ErrNoWordPairs):
		return &httpError{http.StatusInternalServerError, APIError{CodeNoWordPairs, "No word pairs are loaded"}}
	case errors.Is(err, model.ErrContention):
		return &httpError{http.StatusConflict, APIError{CodeContention, "Game was modified concurrently, try again"}}

	// Map identity errors
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, identity.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, identity.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
