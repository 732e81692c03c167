package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yatishgautam00/spy-game-local/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newGame(id model.GameID) *model.Game {
	return &model.Game{
		ID:    id,
		Stage: model.StageWaiting,
		Players: []model.Player{
			{UID: "u-1", Name: "Alice", Active: true},
		},
		Votes:     map[model.UserID]model.UserID{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:          "u-1",
		DisplayName: "Alice",
		Email:       "alice@example.com",
		CreatedAt:   time.Now(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u-1")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal(user.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsers() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u-1", DisplayName: "Alice"})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u-2", DisplayName: "Bob"})

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)
}

// Credential tests

func (s *StorageSuite) TestSaveAndGetCredentialsByEmail() {
	creds := &model.Credentials{
		UserID:       "u-1",
		Email:        "alice@example.com",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveCredentials(s.ctx, creds)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCredentialsByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u-1"), retrieved.UserID)
	s.Equal("hash123", retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetCredentialsByEmailNotFound() {
	_, err := s.storage.GetCredentialsByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Invitation tests

func (s *StorageSuite) TestSaveAndGetInvitation() {
	inv := &model.Invitation{
		ID:        "inv-1",
		GameID:    "GAME12345678",
		InviterID: "u-1",
		InviteeID: "u-2",
		Status:    model.InvitationInvited,
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveInvitation(s.ctx, inv)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetInvitation(s.ctx, "inv-1")
	s.Require().NoError(err)
	s.Equal(inv.InviteeID, retrieved.InviteeID)
	s.Equal(model.InvitationInvited, retrieved.Status)
}

func (s *StorageSuite) TestGetInvitationNotFound() {
	_, err := s.storage.GetInvitation(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrInvitationNotFound)
}

func (s *StorageSuite) TestGetInvitationsForGame() {
	_ = s.storage.SaveInvitation(s.ctx, &model.Invitation{ID: "inv-1", GameID: "GAME1", InviteeID: "u-2"})
	_ = s.storage.SaveInvitation(s.ctx, &model.Invitation{ID: "inv-2", GameID: "GAME1", InviteeID: "u-3"})
	_ = s.storage.SaveInvitation(s.ctx, &model.Invitation{ID: "inv-3", GameID: "GAME2", InviteeID: "u-2"})

	invs, err := s.storage.GetInvitationsForGame(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Len(invs, 2)
}

func (s *StorageSuite) TestGetInvitationsForInviteeFiltersByStatus() {
	_ = s.storage.SaveInvitation(s.ctx, &model.Invitation{ID: "inv-1", GameID: "GAME1", InviteeID: "u-2", Status: model.InvitationInvited})
	_ = s.storage.SaveInvitation(s.ctx, &model.Invitation{ID: "inv-2", GameID: "GAME2", InviteeID: "u-2", Status: model.InvitationAccepted})
	_ = s.storage.SaveInvitation(s.ctx, &model.Invitation{ID: "inv-3", GameID: "GAME3", InviteeID: "u-3", Status: model.InvitationInvited})

	pending, err := s.storage.GetInvitationsForInvitee(s.ctx, "u-2", model.InvitationInvited)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(model.InvitationID("inv-1"), pending[0].ID)

	all, err := s.storage.GetInvitationsForInvitee(s.ctx, "u-2", "")
	s.Require().NoError(err)
	s.Len(all, 2)
}

// Game tests

func (s *StorageSuite) TestCreateAndGetGame() {
	game := s.newGame("GAME12345678")

	err := s.storage.CreateGame(s.ctx, game)
	s.Require().NoError(err)
	s.Equal(int64(1), game.Version)

	retrieved, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(int64(1), retrieved.Version)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetGameReturnsClone() {
	game := s.newGame("GAME12345678")
	_ = s.storage.CreateGame(s.ctx, game)

	first, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	first.Stage = model.StageVoting
	first.Players[0].Eliminated = true

	second, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(model.StageWaiting, second.Stage)
	s.False(second.Players[0].Eliminated)
}

func (s *StorageSuite) TestPutGameIncrementsVersion() {
	game := s.newGame("GAME12345678")
	_ = s.storage.CreateGame(s.ctx, game)

	game.Stage = model.StagePlaying
	err := s.storage.PutGame(s.ctx, game, 1)
	s.Require().NoError(err)
	s.Equal(int64(2), game.Version)

	retrieved, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(model.StagePlaying, retrieved.Stage)
	s.Equal(int64(2), retrieved.Version)
}

func (s *StorageSuite) TestPutGameStaleVersionConflicts() {
	game := s.newGame("GAME12345678")
	_ = s.storage.CreateGame(s.ctx, game)

	winner := game.Clone()
	winner.Stage = model.StagePlaying
	s.Require().NoError(s.storage.PutGame(s.ctx, winner, 1))

	loser := game.Clone()
	loser.Stage = model.StageVoting
	err := s.storage.PutGame(s.ctx, loser, 1)
	s.ErrorIs(err, model.ErrVersionConflict)

	// The winner's write is intact
	retrieved, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(model.StagePlaying, retrieved.Stage)
}

func (s *StorageSuite) TestPutGameUnknownGame() {
	game := s.newGame("NONEXISTENT")
	err := s.storage.PutGame(s.ctx, game, 1)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameExists() {
	game := s.newGame("GAME12345678")
	_ = s.storage.CreateGame(s.ctx, game)

	exists, err := s.storage.GameExists(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GameExists(s.ctx, "OTHER")
	s.Require().NoError(err)
	s.False(exists)
}

// Word pair tests

func (s *StorageSuite) TestSaveAndGetWordPairs() {
	pairs := []model.WordPair{
		{SpyWord: "cat", VillagerWord: "dog"},
		{SpyWord: "tea", VillagerWord: "coffee"},
	}

	err := s.storage.SaveWordPairs(s.ctx, pairs)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetWordPairs(s.ctx)
	s.Require().NoError(err)
	s.Equal(pairs, retrieved)
}

func (s *StorageSuite) TestGetWordPairsEmpty() {
	_, err := s.storage.GetWordPairs(s.ctx)
	s.ErrorIs(err, model.ErrNoWordPairs)
}
