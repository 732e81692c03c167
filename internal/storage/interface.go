package storage

import (
	"context"

	"github.com/yatishgautam00/spy-game-local/internal/model"
)

// Storage defines the interface for data persistence.
//
// Games carry a version number. PutGame commits only when the stored
// version matches expectedVersion, so concurrent writers cannot silently
// overwrite each other; losers get model.ErrVersionConflict and are
// expected to re-read and re-validate.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Credential operations
	SaveCredentials(ctx context.Context, creds *model.Credentials) error
	GetCredentialsByEmail(ctx context.Context, email string) (*model.Credentials, error)

	// Invitation operations
	SaveInvitation(ctx context.Context, inv *model.Invitation) error
	GetInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error)
	GetInvitationsForGame(ctx context.Context, gameID model.GameID) ([]*model.Invitation, error)
	GetInvitationsForInvitee(ctx context.Context, inviteeID model.UserID, status model.InvitationStatus) ([]*model.Invitation, error)

	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	PutGame(ctx context.Context, game *model.Game, expectedVersion int64) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// Word pair operations
	GetWordPairs(ctx context.Context) ([]model.WordPair, error)
	SaveWordPairs(ctx context.Context, pairs []model.WordPair) error
}
