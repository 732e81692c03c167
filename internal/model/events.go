package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Invitation events
	EventInviteSent     EventType = "invite_sent"
	EventInviteAccepted EventType = "invite_accepted"
	EventInviteRejected EventType = "invite_rejected"
	EventPlayerJoined   EventType = "player_joined"

	// Game events
	EventGameStarted   EventType = "game_started"
	EventVotingStarted EventType = "voting_started"
	EventVoteCast      EventType = "vote_cast"
	EventRoundResolved EventType = "round_resolved"
	EventGameEnded     EventType = "game_ended"
	EventGameReset     EventType = "game_reset"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	ActorID   UserID    `json:"actor_id"` // The user who triggered the event
	Payload   any       `json:"payload,omitempty"` // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	UID  UserID `json:"uid"`
	Name string `json:"name"`
}

// InviteSentPayload contains data for invite sent events
type InviteSentPayload struct {
	InviteeIDs []UserID `json:"invitee_ids"`
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Round       int `json:"round"`
	PlayerCount int `json:"player_count"`
}

// VotingStartedPayload contains data for voting started events
type VotingStartedPayload struct {
	Round int `json:"round"`
}

// RoundResolvedPayload contains data for round resolved events
type RoundResolvedPayload struct {
	Round          int    `json:"round"`
	EliminatedUID  UserID `json:"eliminated_uid"`
	EliminatedName string `json:"eliminated_name"`
}

// GameEndedPayload contains data for game ended events.
// The spy's identity and word are public once the game is decided.
type GameEndedPayload struct {
	Winner  Winner `json:"winner"`
	SpyUID  UserID `json:"spy_uid"`
	SpyName string `json:"spy_name"`
	SpyWord string `json:"spy_word"`
}
