package response

import (
	"time"

	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/services/identity"
)

// User represents a user in API responses
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

// UserFromModel converts a model.User to a response User. Email is only
// included for the user's own record.
func UserFromModel(u *model.User, includeEmail bool) User {
	user := User{
		ID:          string(u.ID),
		DisplayName: u.DisplayName,
	}
	if includeEmail {
		user.Email = u.Email
	}
	return user
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *identity.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User, true),
		SessionToken: s.Token,
	}
}

// Invitation represents an invitation in API responses
type Invitation struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	InviterID string    `json:"inviter_id"`
	InviteeID string    `json:"invitee_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationFromModel converts model.Invitation
func InvitationFromModel(inv *model.Invitation) Invitation {
	return Invitation{
		ID:        string(inv.ID),
		GameID:    string(inv.GameID),
		InviterID: string(inv.InviterID),
		InviteeID: string(inv.InviteeID),
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
	}
}

// InvitationsFromModel converts a slice of invitations
func InvitationsFromModel(invs []*model.Invitation) []Invitation {
	out := make([]Invitation, len(invs))
	for i, inv := range invs {
		out[i] = InvitationFromModel(inv)
	}
	return out
}

// PlayerView is one seated player as seen by a specific viewer. Role and
// Word are set only on the viewer's own entry while the game is live; an
// ended game reveals every role.
type PlayerView struct {
	UID        string `json:"uid"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
	Eliminated bool   `json:"eliminated"`
	HasVoted   bool   `json:"has_voted"`
	Role       string `json:"role,omitempty"`
	Word       string `json:"word,omitempty"`
}

// GameState is the game as seen by a specific viewer
type GameState struct {
	ID               string       `json:"id"`
	Stage            string       `json:"stage"`
	Round            int          `json:"round"`
	HostID           string       `json:"host_id"`
	Players          []PlayerView `json:"players"`
	EliminatedPlayer *string      `json:"eliminated_player,omitempty"`
	Winner           string       `json:"winner,omitempty"`

	// The viewer's own secret assignment, set while the game is live
	YourRole string `json:"your_role,omitempty"`
	YourWord string `json:"your_word,omitempty"`

	// Vote targets, revealed once the round is resolved
	Votes map[string]string `json:"votes,omitempty"`

	// Spy reveal, set once the game has ended
	SpyUID  string `json:"spy_uid,omitempty"`
	SpyName string `json:"spy_name,omitempty"`
	SpyWord string `json:"spy_word,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameStateForViewer converts a model.Game into the view viewerID may
// see. Hidden state stays server-side: roles and words of other players
// while the game is live, and vote targets until the round resolves.
func GameStateForViewer(g *model.Game, viewerID model.UserID) GameState {
	ended := g.Stage == model.StageEnded
	votesRevealed := g.Stage == model.StageResolved || ended

	state := GameState{
		ID:        string(g.ID),
		Stage:     string(g.Stage),
		Round:     g.Round,
		HostID:    string(g.Host()),
		Players:   make([]PlayerView, 0, len(g.Players)),
		Winner:    string(g.Winner),
		Version:   g.Version,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}

	if g.EliminatedPlayer != nil {
		uid := string(*g.EliminatedPlayer)
		state.EliminatedPlayer = &uid
	}

	for _, p := range g.Players {
		_, hasVoted := g.Votes[p.UID]
		view := PlayerView{
			UID:        string(p.UID),
			Name:       p.Name,
			Active:     p.Active,
			Eliminated: p.Eliminated,
			HasVoted:   hasVoted,
		}
		if ended || p.UID == viewerID {
			view.Role = string(p.Role)
			view.Word = p.Word
		}
		state.Players = append(state.Players, view)

		if p.UID == viewerID {
			state.YourRole = string(p.Role)
			state.YourWord = p.Word
		}
	}

	if votesRevealed && len(g.Votes) > 0 {
		state.Votes = make(map[string]string, len(g.Votes))
		for voter, target := range g.Votes {
			state.Votes[string(voter)] = string(target)
		}
	}

	if ended {
		if spy := g.Spy(); spy != nil {
			state.SpyUID = string(spy.UID)
			state.SpyName = spy.Name
			state.SpyWord = g.SpyWord
		}
	}

	return state
}
