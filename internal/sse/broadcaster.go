package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/yatishgautam00/spy-game-local/internal/model"
)

// Broadcaster pushes game events and state snapshots to SSE clients.
//
// Everything it sends is spectator-safe: roles, words and in-progress vote
// targets never appear on the stream. Clients fetch their own personalized
// view over the REST API when an event tells them something changed.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// publicPlayer is the per-player view safe for any connected client
type publicPlayer struct {
	UID        model.UserID `json:"uid"`
	Name       string       `json:"name"`
	Active     bool         `json:"active"`
	Eliminated bool         `json:"eliminated"`
	HasVoted   bool         `json:"has_voted"`
}

// publicState is the game snapshot safe for any connected client
type publicState struct {
	ID               model.GameID    `json:"id"`
	Stage            model.GameStage `json:"stage"`
	Round            int             `json:"round"`
	Players          []publicPlayer  `json:"players"`
	EliminatedPlayer *model.UserID   `json:"eliminated_player,omitempty"`
	Winner           model.Winner    `json:"winner,omitempty"`
	Version          int64           `json:"version"`

	// Populated only once the game has ended
	SpyUID  model.UserID `json:"spy_uid,omitempty"`
	SpyWord string       `json:"spy_word,omitempty"`
}

func publicStateFor(game *model.Game) publicState {
	state := publicState{
		ID:               game.ID,
		Stage:            game.Stage,
		Round:            game.Round,
		Players:          make([]publicPlayer, 0, len(game.Players)),
		EliminatedPlayer: game.EliminatedPlayer,
		Winner:           game.Winner,
		Version:          game.Version,
	}

	for _, p := range game.Players {
		_, hasVoted := game.Votes[p.UID]
		state.Players = append(state.Players, publicPlayer{
			UID:        p.UID,
			Name:       p.Name,
			Active:     p.Active,
			Eliminated: p.Eliminated,
			HasVoted:   hasVoted,
		})
	}

	if game.Stage == model.StageEnded {
		if spy := game.Spy(); spy != nil {
			state.SpyUID = spy.UID
			state.SpyWord = game.SpyWord
		}
	}

	return state
}

// BroadcastEvent sends a domain event to all clients of its game
func (b *Broadcaster) BroadcastEvent(event model.Event) {
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to marshal event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event_type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}

// BroadcastGameState sends a redacted state snapshot to all clients of a game
func (b *Broadcaster) BroadcastGameState(game *model.Game) {
	hub := b.hubManager.GetHub(game.ID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(publicStateFor(game))
	if err != nil {
		b.logger.Error("sse failed to marshal game state",
			slog.String("game_id", string(game.ID)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent("state", string(data))
}

// Publish broadcasts the committed state followed by the events produced
// by the commit
func (b *Broadcaster) Publish(game *model.Game, events []model.Event) {
	b.BroadcastGameState(game)
	for _, event := range events {
		b.BroadcastEvent(event)
	}
}
