package memory

import (
	"context"
	"sync"

	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users       map[model.UserID]*model.User
	credentials map[model.UserID]*model.Credentials
	emailIndex  map[string]model.UserID
	invitations map[model.InvitationID]*model.Invitation
	games       map[model.GameID]*model.Game
	wordPairs   []model.WordPair
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:       make(map[model.UserID]*model.User),
		credentials: make(map[model.UserID]*model.Credentials),
		emailIndex:  make(map[string]model.UserID),
		invitations: make(map[model.InvitationID]*model.Invitation),
		games:       make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}
	return users, nil
}

// Credential operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *creds
	s.credentials[creds.UserID] = &c
	s.emailIndex[creds.Email] = creds.UserID
	return nil
}

func (s *Storage) GetCredentialsByEmail(ctx context.Context, email string) (*model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	creds, ok := s.credentials[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	c := *creds
	return &c, nil
}

// Invitation operations

func (s *Storage) SaveInvitation(ctx context.Context, inv *model.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := *inv
	s.invitations[inv.ID] = &i
	return nil
}

func (s *Storage) GetInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invitations[id]
	if !ok {
		return nil, model.ErrInvitationNotFound
	}
	i := *inv
	return &i, nil
}

func (s *Storage) GetInvitationsForGame(ctx context.Context, gameID model.GameID) ([]*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var invs []*model.Invitation
	for _, inv := range s.invitations {
		if inv.GameID == gameID {
			i := *inv
			invs = append(invs, &i)
		}
	}
	return invs, nil
}

func (s *Storage) GetInvitationsForInvitee(ctx context.Context, inviteeID model.UserID, status model.InvitationStatus) ([]*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var invs []*model.Invitation
	for _, inv := range s.invitations {
		if inv.InviteeID == inviteeID && (status == "" || inv.Status == status) {
			i := *inv
			invs = append(invs, &i)
		}
	}
	return invs, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game.Version = 1
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) PutGame(ctx context.Context, game *model.Game, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.games[game.ID]
	if !ok {
		return model.ErrGameNotFound
	}
	if stored.Version != expectedVersion {
		return model.ErrVersionConflict
	}
	game.Version = expectedVersion + 1
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[id]
	return ok, nil
}

// Word pair operations

func (s *Storage) GetWordPairs(ctx context.Context) ([]model.WordPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wordPairs == nil {
		return nil, model.ErrNoWordPairs
	}
	pairs := make([]model.WordPair, len(s.wordPairs))
	copy(pairs, s.wordPairs)
	return pairs, nil
}

func (s *Storage) SaveWordPairs(ctx context.Context, pairs []model.WordPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wordPairs = make([]model.WordPair, len(pairs))
	copy(s.wordPairs, pairs)
	return nil
}
