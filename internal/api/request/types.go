package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// InviteRequest is the request body for inviting users to a game
type InviteRequest struct {
	InviteeIDs []string `json:"invitee_ids"`
}

// RespondRequest is the request body for responding to an invitation
type RespondRequest struct {
	Accept bool `json:"accept"`
}

// StartGameRequest is the request body for starting a game. Both words
// must be set to override the random draw.
type StartGameRequest struct {
	SpyWord      string `json:"spy_word,omitempty"`
	VillagerWord string `json:"villager_word,omitempty"`
}

// VoteRequest is the request body for casting a vote
type VoteRequest struct {
	TargetID string `json:"target_id"`
}
