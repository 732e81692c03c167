package invitation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/clock"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
)

// Service manages the invitation lifecycle: invite, respond, start gating.
// Invitations are append-mostly records; once resolved they stay resolved
// and a blocked roster requires fresh invitations, not retries.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new invitation service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Invite creates one invited-status invitation per invitee for the game.
// Only the game's host may invite. Every invitee is validated before any
// invitation is written, so a rejected batch leaves no partial state.
func (s *Service) Invite(ctx context.Context, game *model.Game, hostID model.UserID, inviteeIDs []model.UserID) ([]*model.Invitation, error) {
	if game.Host() != hostID {
		return nil, model.ErrNotHost
	}

	existing, err := s.storage.GetInvitationsForGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	activeInvitee := make(map[model.UserID]bool)
	for _, inv := range existing {
		if inv.Status == model.InvitationInvited {
			activeInvitee[inv.InviteeID] = true
		}
	}

	// Validate the whole batch first
	invitees := make([]*model.User, 0, len(inviteeIDs))
	for _, inviteeID := range inviteeIDs {
		if inviteeID == hostID {
			return nil, model.ErrSelfInvite
		}
		if activeInvitee[inviteeID] {
			return nil, model.ErrDuplicateInvite
		}
		invitee, err := s.storage.GetUser(ctx, inviteeID)
		if err != nil {
			return nil, err
		}
		invitees = append(invitees, invitee)
		activeInvitee[inviteeID] = true
	}

	now := s.clock.Now()
	invs := make([]*model.Invitation, 0, len(invitees))
	for _, invitee := range invitees {
		inv := &model.Invitation{
			ID:        model.InvitationID(uuid.NewString()),
			GameID:    game.ID,
			InviterID: hostID,
			InviteeID: invitee.ID,
			Status:    model.InvitationInvited,
			CreatedAt: now,
		}
		if err := s.storage.SaveInvitation(ctx, inv); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}

	s.logger.Info("invitations sent",
		slog.String("game_id", string(game.ID)),
		slog.String("inviter_id", string(hostID)),
		slog.Int("count", len(invs)),
	)

	return invs, nil
}

// Respond records the invitee's decision. Only the named invitee may
// respond, and only once; the status transition is one-way.
func (s *Service) Respond(ctx context.Context, invitationID model.InvitationID, responderID model.UserID, accept bool) (*model.Invitation, error) {
	inv, err := s.storage.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if inv.InviteeID != responderID {
		return nil, model.ErrNotInvitee
	}
	if inv.Resolved() {
		return nil, model.ErrAlreadyResolved
	}

	if accept {
		inv.Status = model.InvitationAccepted
	} else {
		inv.Status = model.InvitationRejected
	}

	if err := s.storage.SaveInvitation(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("invitation resolved",
		slog.String("invitation_id", string(inv.ID)),
		slog.String("game_id", string(inv.GameID)),
		slog.String("status", string(inv.Status)),
	)

	return inv, nil
}

// CanStart reports whether the game's roster is settled: at least one
// invitation exists, none were rejected, and every outstanding one has
// been accepted. A single rejection blocks start until the host opens a
// fresh game.
func (s *Service) CanStart(ctx context.Context, gameID model.GameID) (bool, error) {
	invs, err := s.storage.GetInvitationsForGame(ctx, gameID)
	if err != nil {
		return false, err
	}
	if len(invs) == 0 {
		return false, nil
	}

	for _, inv := range invs {
		if inv.Status != model.InvitationAccepted {
			return false, nil
		}
	}
	return true, nil
}

// ForGame lists all invitations issued for a game
func (s *Service) ForGame(ctx context.Context, gameID model.GameID) ([]*model.Invitation, error) {
	return s.storage.GetInvitationsForGame(ctx, gameID)
}

// PendingFor lists invitations still awaiting the user's response
func (s *Service) PendingFor(ctx context.Context, userID model.UserID) ([]*model.Invitation, error) {
	return s.storage.GetInvitationsForInvitee(ctx, userID, model.InvitationInvited)
}
