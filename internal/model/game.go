package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStage represents the current phase of a game
type GameStage string

const (
	StageWaiting  GameStage = "waiting"  // Host assembling the roster
	StagePlaying  GameStage = "playing"  // Discussion phase
	StageVoting   GameStage = "voting"   // Votes being collected
	StageResolved GameStage = "resolved" // Round decided, no winner yet
	StageEnded    GameStage = "ended"    // Winner decided, awaiting reset
)

// Winner identifies the winning side once a game is decided
type Winner string

const (
	WinnerNone      Winner = ""
	WinnerVillagers Winner = "villagers"
	WinnerSpy       Winner = "spy"
)

// WordPair couples the spy's secret word with the villagers' word
type WordPair struct {
	SpyWord      string
	VillagerWord string
}

// Game is the authoritative shared state of one spy-game session
type Game struct {
	ID      GameID
	Players []Player // insertion order = join order; Players[0] is the host
	Stage   GameStage
	Round   int

	// Voting state for the current round
	Votes            map[UserID]UserID // voter -> target
	EliminatedPlayer *UserID

	Winner       Winner
	SpyWord      string
	VillagerWord string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Version increments on every committed change; storage rejects puts
	// whose expected version is stale.
	Version int64
}

// Host returns the creating player's UID
func (g *Game) Host() UserID {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[0].UID
}

// GetPlayer returns the seated player with the given UID, or nil if not seated
func (g *Game) GetPlayer(uid UserID) *Player {
	for i := range g.Players {
		if g.Players[i].UID == uid {
			return &g.Players[i]
		}
	}
	return nil
}

// ActivePlayers returns the players not yet eliminated
func (g *Game) ActivePlayers() []Player {
	var active []Player
	for _, p := range g.Players {
		if !p.Eliminated {
			active = append(active, p)
		}
	}
	return active
}

// AllVotesIn reports whether every active player has a recorded vote
func (g *Game) AllVotesIn() bool {
	for _, p := range g.Players {
		if p.Eliminated {
			continue
		}
		if _, ok := g.Votes[p.UID]; !ok {
			return false
		}
	}
	return true
}

// Spy returns the player holding the spy role, or nil before assignment
func (g *Game) Spy() *Player {
	for i := range g.Players {
		if g.Players[i].Role == RoleSpy {
			return &g.Players[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the game.
// Storage hands out clones so callers never alias committed state.
func (g *Game) Clone() *Game {
	out := *g

	out.Players = make([]Player, len(g.Players))
	copy(out.Players, g.Players)

	out.Votes = make(map[UserID]UserID, len(g.Votes))
	for voter, target := range g.Votes {
		out.Votes[voter] = target
	}

	if g.EliminatedPlayer != nil {
		uid := *g.EliminatedPlayer
		out.EliminatedPlayer = &uid
	}

	return &out
}
