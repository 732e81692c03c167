package game

import (
	"log/slog"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/clock"
	"github.com/yatishgautam00/spy-game-local/internal/dependencies/random"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/services/roles"
)

const (
	// GameIDLength is the length of generated game IDs
	GameIDLength = 12
	// GameIDAlphabet is the characters used in game IDs
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Controller drives the round/voting state machine.
//
// Every method validates against - and then mutates - the game value it is
// handed; nothing here touches storage. The session facade owns loading,
// serialization and commit, so a guard failure can never leave a partially
// updated game behind: the caller simply discards the loaded copy.
type Controller struct {
	rolesService *roles.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new game controller
func NewController(rolesService *roles.Service, clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		rolesService: rolesService,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// NewGame builds a fresh waiting-stage game with the host as its only,
// permanently first, player.
func (c *Controller) NewGame(host *model.User) *model.Game {
	now := c.clock.Now()
	return &model.Game{
		ID: model.GameID(c.random.String(GameIDLength, GameIDAlphabet)),
		Players: []model.Player{
			{
				UID:    host.ID,
				Name:   host.DisplayName,
				Role:   model.RoleUnassigned,
				Active: true,
			},
		},
		Stage:     model.StageWaiting,
		Round:     0,
		Votes:     make(map[model.UserID]model.UserID),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Join seats a user in a waiting game. Joining twice is a no-op so an
// accepted invitation can be replayed safely.
func (c *Controller) Join(g *model.Game, user *model.User) error {
	if g.Stage != model.StageWaiting {
		return model.ErrGameAlreadyStarted
	}
	if g.GetPlayer(user.ID) != nil {
		return nil
	}

	g.Players = append(g.Players, model.Player{
		UID:    user.ID,
		Name:   user.DisplayName,
		Role:   model.RoleUnassigned,
		Active: true,
	})
	g.UpdatedAt = c.clock.Now()
	return nil
}

// Start moves a waiting game into play: roles dealt, words set, round 1
func (c *Controller) Start(g *model.Game, actorID model.UserID, pair model.WordPair) error {
	if g.Host() != actorID {
		return model.ErrNotHost
	}
	if g.Stage != model.StageWaiting {
		return model.ErrGameAlreadyStarted
	}

	assigned, err := c.rolesService.Assign(g.Players, pair)
	if err != nil {
		return err
	}

	g.Players = assigned
	g.Stage = model.StagePlaying
	g.Round = 1
	g.Votes = make(map[model.UserID]model.UserID)
	g.EliminatedPlayer = nil
	g.Winner = model.WinnerNone
	g.SpyWord = pair.SpyWord
	g.VillagerWord = pair.VillagerWord
	g.UpdatedAt = c.clock.Now()

	c.logger.Info("game started",
		slog.String("game_id", string(g.ID)),
		slog.Int("player_count", len(g.Players)),
	)

	return nil
}

// StartVoting opens a voting round. Only the host may call it, from the
// discussion phase or from a resolved round with no winner (which begins
// the next round).
func (c *Controller) StartVoting(g *model.Game, actorID model.UserID) error {
	if g.Host() != actorID {
		return model.ErrNotHost
	}

	switch g.Stage {
	case model.StageVoting:
		return model.ErrAlreadyVoting
	case model.StagePlaying:
		// same round
	case model.StageResolved:
		g.Round++
	case model.StageWaiting:
		return model.ErrGameNotStarted
	default:
		return model.ErrGameOver
	}

	g.Stage = model.StageVoting
	g.Votes = make(map[model.UserID]model.UserID)
	g.EliminatedPlayer = nil
	g.UpdatedAt = c.clock.Now()

	c.logger.Info("voting started",
		slog.String("game_id", string(g.ID)),
		slog.Int("round", g.Round),
	)

	return nil
}

// CastVote records one active player's vote for an active target.
// Self-votes are allowed. When the last active player votes, the round
// resolves within the same call, so vote and resolution commit together.
func (c *Controller) CastVote(g *model.Game, voterID, targetID model.UserID) error {
	if g.Stage != model.StageVoting {
		return model.ErrNotVoting
	}

	voter := g.GetPlayer(voterID)
	if voter == nil || voter.Eliminated {
		return model.ErrInvalidVoter
	}
	if _, voted := g.Votes[voterID]; voted {
		return model.ErrAlreadyVoted
	}

	target := g.GetPlayer(targetID)
	if target == nil || target.Eliminated {
		return model.ErrInvalidTarget
	}

	g.Votes[voterID] = targetID
	g.UpdatedAt = c.clock.Now()

	if g.AllVotesIn() {
		c.resolveRound(g)
	}

	return nil
}

// resolveRound tallies the completed vote, eliminates the chosen player
// and evaluates the win condition.
//
// Ties on the vote count are broken deterministically: the lowest UID
// (byte order) among the tied targets is eliminated.
func (c *Controller) resolveRound(g *model.Game) {
	tally := make(map[model.UserID]int)
	for _, targetID := range g.Votes {
		tally[targetID]++
	}

	var eliminatedUID model.UserID
	best := -1
	for targetID, count := range tally {
		if count > best || (count == best && targetID < eliminatedUID) {
			eliminatedUID = targetID
			best = count
		}
	}

	eliminated := g.GetPlayer(eliminatedUID)
	eliminated.Eliminated = true
	eliminated.Active = false
	uid := eliminatedUID
	g.EliminatedPlayer = &uid

	remaining := len(g.ActivePlayers())

	switch {
	case eliminated.Role == model.RoleSpy:
		g.Winner = model.WinnerVillagers
	case remaining <= 2:
		g.Winner = model.WinnerSpy
	default:
		g.Winner = model.WinnerNone
	}

	if g.Winner != model.WinnerNone {
		g.Stage = model.StageEnded
	} else {
		g.Stage = model.StageResolved
	}
	g.UpdatedAt = c.clock.Now()

	c.logger.Info("round resolved",
		slog.String("game_id", string(g.ID)),
		slog.Int("round", g.Round),
		slog.String("eliminated", string(eliminatedUID)),
		slog.String("winner", string(g.Winner)),
		slog.Int("remaining", remaining),
	)
}

// Reset returns an ended game to play with fresh roles and words over the
// full roster, previously eliminated players included. Any seated player
// may reset.
func (c *Controller) Reset(g *model.Game, actorID model.UserID, pair model.WordPair) error {
	if g.GetPlayer(actorID) == nil {
		return model.ErrNotInGame
	}
	if g.Stage != model.StageEnded {
		return model.ErrGameNotEnded
	}

	assigned, err := c.rolesService.Assign(g.Players, pair)
	if err != nil {
		return err
	}

	g.Players = assigned
	g.Stage = model.StagePlaying
	g.Round = 1
	g.Votes = make(map[model.UserID]model.UserID)
	g.EliminatedPlayer = nil
	g.Winner = model.WinnerNone
	g.SpyWord = pair.SpyWord
	g.VillagerWord = pair.VillagerWord
	g.UpdatedAt = c.clock.Now()

	c.logger.Info("game reset",
		slog.String("game_id", string(g.ID)),
		slog.Int("player_count", len(g.Players)),
	)

	return nil
}
