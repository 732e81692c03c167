package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case []User:
		o.printUsers(v)
	case AuthResult:
		o.printAuthResult(v)
	case Invitation:
		o.printInvitation(v)
	case []Invitation:
		o.printInvitations(v)
	case GameState:
		o.printGameState(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// Invitation response type
type Invitation struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	InviterID string    `json:"inviter_id"`
	InviteeID string    `json:"invitee_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerView response type
type PlayerView struct {
	UID        string `json:"uid"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
	Eliminated bool   `json:"eliminated"`
	HasVoted   bool   `json:"has_voted"`
	Role       string `json:"role,omitempty"`
	Word       string `json:"word,omitempty"`
}

// GameState response type
type GameState struct {
	ID               string            `json:"id"`
	Stage            string            `json:"stage"`
	Round            int               `json:"round"`
	HostID           string            `json:"host_id"`
	Players          []PlayerView      `json:"players"`
	EliminatedPlayer *string           `json:"eliminated_player,omitempty"`
	Winner           string            `json:"winner,omitempty"`
	YourRole         string            `json:"your_role,omitempty"`
	YourWord         string            `json:"your_word,omitempty"`
	Votes            map[string]string `json:"votes,omitempty"`
	SpyUID           string            `json:"spy_uid,omitempty"`
	SpyName          string            `json:"spy_name,omitempty"`
	SpyWord          string            `json:"spy_word,omitempty"`
	Version          int64             `json:"version"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.DisplayName, u.ID)
	if u.Email != "" {
		fmt.Printf("Email: %s\n", u.Email)
	}
}

func (o *Output) printUsers(users []User) {
	fmt.Printf("Users (%d):\n", len(users))
	for _, u := range users {
		fmt.Printf("  - %s (%s)\n", u.DisplayName, u.ID)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printInvitation(inv Invitation) {
	fmt.Printf("Invitation: %s\n", inv.ID)
	fmt.Printf("Game: %s\n", inv.GameID)
	fmt.Printf("Invitee: %s\n", inv.InviteeID)
	fmt.Printf("Status: %s\n", inv.Status)
}

func (o *Output) printInvitations(invs []Invitation) {
	fmt.Printf("Invitations (%d):\n", len(invs))
	for _, inv := range invs {
		fmt.Printf("  - %s  game=%s  invitee=%s  [%s]\n", inv.ID, inv.GameID, inv.InviteeID, inv.Status)
	}
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Stage: %s\n", g.Stage)
	if g.Round > 0 {
		fmt.Printf("Round: %d\n", g.Round)
	}
	fmt.Printf("Host: %s\n", g.HostID)

	if g.YourRole != "" {
		fmt.Printf("Your Role: %s\n", g.YourRole)
		fmt.Printf("Your Word: %s\n", g.YourWord)
	}

	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		marks := ""
		if p.UID == g.HostID {
			marks += " [host]"
		}
		if p.Eliminated {
			marks += " [eliminated]"
		}
		if p.HasVoted {
			marks += " [voted]"
		}
		if p.Role != "" {
			marks += fmt.Sprintf(" role=%s word=%s", p.Role, p.Word)
		}
		fmt.Printf("  - %s (%s)%s\n", p.Name, p.UID, marks)
	}

	if len(g.Votes) > 0 {
		fmt.Println("Votes:")
		for voter, target := range g.Votes {
			fmt.Printf("  %s -> %s\n", voter, target)
		}
	}

	if g.EliminatedPlayer != nil {
		fmt.Printf("Eliminated: %s\n", *g.EliminatedPlayer)
	}

	if g.Winner != "" {
		fmt.Printf("\nWinner: %s\n", g.Winner)
		if g.SpyUID != "" {
			fmt.Printf("The spy was %s (%s), word: %s\n", g.SpyName, g.SpyUID, g.SpyWord)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
