package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/clock"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/services/game"
	"github.com/yatishgautam00/spy-game-local/internal/services/invitation"
	"github.com/yatishgautam00/spy-game-local/internal/services/words"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
)

// maxCommitAttempts bounds the re-read/re-apply loop when a conditional
// put loses to a concurrent writer
const maxCommitAttempts = 3

// Intent is a requested mutation of a game session. Intents carry the
// request parameters only; the actor and the game come from Apply.
type Intent interface {
	isIntent()
}

// InviteIntent invites users to the game. Host only.
type InviteIntent struct {
	InviteeIDs []model.UserID
}

// RespondIntent accepts or rejects an invitation held by the actor
type RespondIntent struct {
	InvitationID model.InvitationID
	Accept       bool
}

// StartGameIntent deals roles and starts play. A nil Pair draws a random
// word pair from the loaded dictionary.
type StartGameIntent struct {
	Pair *model.WordPair
}

// StartVotingIntent opens a voting round
type StartVotingIntent struct{}

// CastVoteIntent votes to eliminate TargetID
type CastVoteIntent struct {
	TargetID model.UserID
}

// ResetGameIntent starts a fresh game over the full roster. A nil Pair
// draws a random word pair.
type ResetGameIntent struct {
	Pair *model.WordPair
}

func (InviteIntent) isIntent()      {}
func (RespondIntent) isIntent()     {}
func (StartGameIntent) isIntent()   {}
func (StartVotingIntent) isIntent() {}
func (CastVoteIntent) isIntent()    {}
func (ResetGameIntent) isIntent()   {}

// Publisher receives each committed game state and the events the commit
// produced
type Publisher interface {
	Publish(game *model.Game, events []model.Event)
}

// Facade is the single entry point for mutating game sessions.
//
// All writes to a game flow through Apply, which serializes writers on a
// per-game mutex and commits through the store's conditional put. If an
// external writer slips a commit in between our read and our put, the
// apply is retried from a fresh read; after maxCommitAttempts losses the
// caller gets ErrContention and nothing has been committed.
type Facade struct {
	storage     storage.Storage
	games       *game.Controller
	invitations *invitation.Service
	words       *words.Service
	publisher   Publisher
	clock       clock.Clock
	logger      *slog.Logger

	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

// New creates a new session facade. publisher may be nil when nothing
// listens for events.
func New(
	storage storage.Storage,
	games *game.Controller,
	invitations *invitation.Service,
	words *words.Service,
	publisher Publisher,
	clock clock.Clock,
	logger *slog.Logger,
) *Facade {
	return &Facade{
		storage:     storage,
		games:       games,
		invitations: invitations,
		words:       words,
		publisher:   publisher,
		clock:       clock,
		logger:      logger.With(slog.String("component", "session")),
		locks:       make(map[model.GameID]*sync.Mutex),
	}
}

// gameLock returns the mutex serializing writers for one game
func (f *Facade) gameLock(gameID model.GameID) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	lock, ok := f.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		f.locks[gameID] = lock
	}
	return lock
}

// CreateGame creates a waiting game hosted by hostID
func (f *Facade) CreateGame(ctx context.Context, hostID model.UserID) (*model.Game, error) {
	host, err := f.storage.GetUser(ctx, hostID)
	if err != nil {
		return nil, err
	}

	g := f.games.NewGame(host)
	if err := f.storage.CreateGame(ctx, g); err != nil {
		return nil, err
	}

	f.logger.Info("game created",
		slog.String("game_id", string(g.ID)),
		slog.String("host", string(hostID)))
	return g, nil
}

// GetGame returns the current committed state of a game
func (f *Facade) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return f.storage.GetGame(ctx, gameID)
}

// Apply executes one intent against a game on behalf of actorID and
// returns the committed state
func (f *Facade) Apply(ctx context.Context, gameID model.GameID, actorID model.UserID, intent Intent) (*model.Game, error) {
	lock := f.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	switch it := intent.(type) {
	case InviteIntent:
		return f.applyInvite(ctx, gameID, actorID, it)
	case RespondIntent:
		return f.applyRespond(ctx, gameID, actorID, it)
	case StartGameIntent:
		return f.applyStartGame(ctx, gameID, actorID, it)
	case StartVotingIntent:
		return f.applyStartVoting(ctx, gameID, actorID)
	case CastVoteIntent:
		return f.applyCastVote(ctx, gameID, actorID, it)
	case ResetGameIntent:
		return f.applyResetGame(ctx, gameID, actorID, it)
	default:
		return nil, errors.New("unknown intent")
	}
}

// RespondToInvitation resolves an invitation by ID, looking up the game
// it belongs to
func (f *Facade) RespondToInvitation(ctx context.Context, invitationID model.InvitationID, actorID model.UserID, accept bool) (*model.Game, error) {
	inv, err := f.storage.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	return f.Apply(ctx, inv.GameID, actorID, RespondIntent{InvitationID: invitationID, Accept: accept})
}

// commit runs the read/apply/conditional-put loop. apply mutates the
// loaded game in place and returns the events the mutation produced.
func (f *Facade) commit(ctx context.Context, gameID model.GameID, apply func(g *model.Game) ([]model.Event, error)) (*model.Game, error) {
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		g, err := f.storage.GetGame(ctx, gameID)
		if err != nil {
			return nil, err
		}

		events, err := apply(g)
		if err != nil {
			return nil, err
		}

		err = f.storage.PutGame(ctx, g, g.Version)
		if err == nil {
			f.publish(g, events)
			return g, nil
		}
		if !errors.Is(err, model.ErrVersionConflict) {
			return nil, err
		}

		f.logger.Warn("commit lost version race, retrying",
			slog.String("game_id", string(gameID)),
			slog.Int("attempt", attempt))
	}

	return nil, model.ErrContention
}

func (f *Facade) publish(g *model.Game, events []model.Event) {
	if f.publisher == nil {
		return
	}
	f.publisher.Publish(g, events)
}

// applyInvite writes invitations without touching the game record, so no
// version is consumed
func (f *Facade) applyInvite(ctx context.Context, gameID model.GameID, actorID model.UserID, it InviteIntent) (*model.Game, error) {
	g, err := f.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Stage != model.StageWaiting {
		return nil, model.ErrGameAlreadyStarted
	}

	invs, err := f.invitations.Invite(ctx, g, actorID, it.InviteeIDs)
	if err != nil {
		return nil, err
	}

	inviteeIDs := make([]model.UserID, 0, len(invs))
	for _, inv := range invs {
		inviteeIDs = append(inviteeIDs, inv.InviteeID)
	}
	f.publish(g, []model.Event{{
		Type:      model.EventInviteSent,
		Timestamp: f.clock.Now(),
		GameID:    gameID,
		ActorID:   actorID,
		Payload:   model.InviteSentPayload{InviteeIDs: inviteeIDs},
	}})
	return g, nil
}

// applyRespond resolves the invitation, then seats an accepting invitee
// through the commit loop
func (f *Facade) applyRespond(ctx context.Context, gameID model.GameID, actorID model.UserID, it RespondIntent) (*model.Game, error) {
	inv, err := f.storage.GetInvitation(ctx, it.InvitationID)
	if err != nil {
		return nil, err
	}
	if inv.GameID != gameID {
		return nil, model.ErrInvitationNotFound
	}

	inv, err = f.invitations.Respond(ctx, it.InvitationID, actorID, it.Accept)
	if err != nil {
		return nil, err
	}

	if !it.Accept {
		g, err := f.storage.GetGame(ctx, gameID)
		if err != nil {
			return nil, err
		}
		f.publish(g, []model.Event{{
			Type:      model.EventInviteRejected,
			Timestamp: f.clock.Now(),
			GameID:    gameID,
			ActorID:   actorID,
		}})
		return g, nil
	}

	user, err := f.storage.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return f.commit(ctx, gameID, func(g *model.Game) ([]model.Event, error) {
		if err := f.games.Join(g, user); err != nil {
			return nil, err
		}
		now := f.clock.Now()
		return []model.Event{
			{
				Type:      model.EventInviteAccepted,
				Timestamp: now,
				GameID:    gameID,
				ActorID:   actorID,
			},
			{
				Type:      model.EventPlayerJoined,
				Timestamp: now,
				GameID:    gameID,
				ActorID:   actorID,
				Payload:   model.PlayerJoinedPayload{UID: user.ID, Name: user.DisplayName},
			},
		}, nil
	})
}

// pickPair resolves an explicitly requested pair or draws a random one
func (f *Facade) pickPair(requested *model.WordPair) (model.WordPair, error) {
	if requested != nil {
		return *requested, nil
	}
	return f.words.RandomPair()
}

func (f *Facade) applyStartGame(ctx context.Context, gameID model.GameID, actorID model.UserID, it StartGameIntent) (*model.Game, error) {
	canStart, err := f.invitations.CanStart(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !canStart {
		return nil, model.ErrInvitesPending
	}

	pair, err := f.pickPair(it.Pair)
	if err != nil {
		return nil, err
	}

	return f.commit(ctx, gameID, func(g *model.Game) ([]model.Event, error) {
		if err := f.games.Start(g, actorID, pair); err != nil {
			return nil, err
		}
		return []model.Event{{
			Type:      model.EventGameStarted,
			Timestamp: f.clock.Now(),
			GameID:    gameID,
			ActorID:   actorID,
			Payload:   model.GameStartedPayload{Round: g.Round, PlayerCount: len(g.Players)},
		}}, nil
	})
}

func (f *Facade) applyStartVoting(ctx context.Context, gameID model.GameID, actorID model.UserID) (*model.Game, error) {
	return f.commit(ctx, gameID, func(g *model.Game) ([]model.Event, error) {
		if err := f.games.StartVoting(g, actorID); err != nil {
			return nil, err
		}
		return []model.Event{{
			Type:      model.EventVotingStarted,
			Timestamp: f.clock.Now(),
			GameID:    gameID,
			ActorID:   actorID,
			Payload:   model.VotingStartedPayload{Round: g.Round},
		}}, nil
	})
}

// applyCastVote records the vote; if it was the final vote the round
// resolution rides in the same commit
func (f *Facade) applyCastVote(ctx context.Context, gameID model.GameID, actorID model.UserID, it CastVoteIntent) (*model.Game, error) {
	return f.commit(ctx, gameID, func(g *model.Game) ([]model.Event, error) {
		if err := f.games.CastVote(g, actorID, it.TargetID); err != nil {
			return nil, err
		}

		now := f.clock.Now()
		events := []model.Event{{
			Type:      model.EventVoteCast,
			Timestamp: now,
			GameID:    gameID,
			ActorID:   actorID,
		}}

		if g.Stage == model.StageResolved || g.Stage == model.StageEnded {
			eliminated := g.GetPlayer(*g.EliminatedPlayer)
			events = append(events, model.Event{
				Type:      model.EventRoundResolved,
				Timestamp: now,
				GameID:    gameID,
				ActorID:   actorID,
				Payload: model.RoundResolvedPayload{
					Round:          g.Round,
					EliminatedUID:  eliminated.UID,
					EliminatedName: eliminated.Name,
				},
			})
		}
		if g.Stage == model.StageEnded {
			spy := g.Spy()
			events = append(events, model.Event{
				Type:      model.EventGameEnded,
				Timestamp: now,
				GameID:    gameID,
				ActorID:   actorID,
				Payload: model.GameEndedPayload{
					Winner:  g.Winner,
					SpyUID:  spy.UID,
					SpyName: spy.Name,
					SpyWord: g.SpyWord,
				},
			})
		}
		return events, nil
	})
}

func (f *Facade) applyResetGame(ctx context.Context, gameID model.GameID, actorID model.UserID, it ResetGameIntent) (*model.Game, error) {
	pair, err := f.pickPair(it.Pair)
	if err != nil {
		return nil, err
	}

	return f.commit(ctx, gameID, func(g *model.Game) ([]model.Event, error) {
		if err := f.games.Reset(g, actorID, pair); err != nil {
			return nil, err
		}
		return []model.Event{{
			Type:      model.EventGameReset,
			Timestamp: f.clock.Now(),
			GameID:    gameID,
			ActorID:   actorID,
			Payload:   model.GameStartedPayload{Round: g.Round, PlayerCount: len(g.Players)},
		}}, nil
	})
}
