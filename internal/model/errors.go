package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Invitation errors
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrDuplicateInvite    = errors.New("invitee already has an active invitation")
	ErrSelfInvite         = errors.New("host cannot invite themself")
	ErrNotInvitee         = errors.New("responder is not the invited user")
	ErrAlreadyResolved    = errors.New("invitation has already been resolved")
	ErrInvitesPending     = errors.New("invitations are pending or were rejected")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrNotHost             = errors.New("player is not the host")
	ErrNotInGame           = errors.New("user is not seated in this game")
	ErrGameAlreadyStarted  = errors.New("game has already started")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameNotEnded        = errors.New("game has not ended")
	ErrGameOver            = errors.New("game is over")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")

	// Voting errors
	ErrAlreadyVoting = errors.New("a voting round is already underway")
	ErrNotVoting     = errors.New("no voting round is underway")
	ErrAlreadyVoted  = errors.New("voter has already cast a vote this round")
	ErrInvalidVoter  = errors.New("voter is eliminated or not a player")
	ErrInvalidTarget = errors.New("target is eliminated or not a player")

	// Word pair errors
	ErrNoWordPairs = errors.New("no word pairs loaded")

	// Concurrency errors
	ErrVersionConflict = errors.New("game version conflict")
	ErrContention      = errors.New("game update lost repeated version races")
)
