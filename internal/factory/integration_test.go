package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/session"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestWordPairs())
}

func (s *IntegrationSuite) registerUser(email, name string) model.UserID {
	sess, err := s.app.IdentityService.Register(s.ctx, email, "secret123", name)
	s.Require().NoError(err)
	return sess.User.ID
}

// Test: registration through invitations, voting, and reset over the
// fully wired application
func (s *IntegrationSuite) TestCompleteGameFlow() {
	hostID := s.registerUser("host@example.com", "Host")
	bobID := s.registerUser("bob@example.com", "Bob")
	carolID := s.registerUser("carol@example.com", "Carol")

	// Step 1: Host creates a game
	s.app.MockRandom.QueueString("GAME12345678")
	game, err := s.app.Facade.CreateGame(s.ctx, hostID)
	s.Require().NoError(err)
	s.Equal(model.GameID("GAME12345678"), game.ID)
	s.Equal(model.StageWaiting, game.Stage)

	// Step 2: Host invites Bob and Carol
	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.InviteIntent{
		InviteeIDs: []model.UserID{bobID, carolID},
	})
	s.Require().NoError(err)

	// Step 3: Start is blocked while invitations are pending
	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartGameIntent{})
	s.ErrorIs(err, model.ErrInvitesPending)

	// Step 4: Both invitees accept
	for _, uid := range []model.UserID{bobID, carolID} {
		pending, err := s.app.InvitationService.PendingFor(s.ctx, uid)
		s.Require().NoError(err)
		s.Require().Len(pending, 1)

		_, err = s.app.Facade.RespondToInvitation(s.ctx, pending[0].ID, uid, true)
		s.Require().NoError(err)
	}

	game, err = s.app.Facade.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Len(game.Players, 3)

	// Step 5: Host starts; Bob (seat 1) becomes the spy
	s.app.MockRandom.QueueIntn(0) // word pair draw
	s.app.MockRandom.QueueIntn(1) // spy seat
	game, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartGameIntent{})
	s.Require().NoError(err)
	s.Equal(model.StagePlaying, game.Stage)
	s.Equal(1, game.Round)
	s.Require().NotNil(game.Spy())
	s.Equal(bobID, game.Spy().UID)

	// Step 6: Voting round; everyone votes for Bob
	game, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartVotingIntent{})
	s.Require().NoError(err)
	s.Equal(model.StageVoting, game.Stage)

	for _, uid := range []model.UserID{hostID, bobID, carolID} {
		game, err = s.app.Facade.Apply(s.ctx, game.ID, uid, session.CastVoteIntent{TargetID: bobID})
		s.Require().NoError(err)
	}

	// Step 7: The final vote resolved the round and ended the game
	s.Equal(model.StageEnded, game.Stage)
	s.Equal(model.WinnerVillagers, game.Winner)
	s.Require().NotNil(game.EliminatedPlayer)
	s.Equal(bobID, *game.EliminatedPlayer)

	// Step 8: Reset deals a fresh match with the full roster
	s.app.MockRandom.QueueIntn(0, 0)
	game, err = s.app.Facade.Apply(s.ctx, game.ID, bobID, session.ResetGameIntent{})
	s.Require().NoError(err)
	s.Equal(model.StagePlaying, game.Stage)
	s.Equal(1, game.Round)
	s.Equal(model.WinnerNone, game.Winner)
	for _, p := range game.Players {
		s.False(p.Eliminated)
		s.True(p.Active)
	}
}

// Test: a villager elimination with enough players left keeps the game going
func (s *IntegrationSuite) TestMultiRoundGame() {
	hostID := s.registerUser("host@example.com", "Host")
	bobID := s.registerUser("bob@example.com", "Bob")
	carolID := s.registerUser("carol@example.com", "Carol")
	daveID := s.registerUser("dave@example.com", "Dave")
	all := []model.UserID{hostID, bobID, carolID, daveID}

	s.app.MockRandom.QueueString("GAME12345678")
	game, err := s.app.Facade.CreateGame(s.ctx, hostID)
	s.Require().NoError(err)

	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.InviteIntent{
		InviteeIDs: []model.UserID{bobID, carolID, daveID},
	})
	s.Require().NoError(err)

	for _, uid := range all[1:] {
		pending, err := s.app.InvitationService.PendingFor(s.ctx, uid)
		s.Require().NoError(err)
		s.Require().Len(pending, 1)
		_, err = s.app.Facade.RespondToInvitation(s.ctx, pending[0].ID, uid, true)
		s.Require().NoError(err)
	}

	// Host (seat 0) is the spy
	s.app.MockRandom.QueueIntn(0, 0)
	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartGameIntent{})
	s.Require().NoError(err)

	// Round 1: everyone votes Dave out; three players remain, no winner
	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartVotingIntent{})
	s.Require().NoError(err)
	for _, uid := range all {
		game, err = s.app.Facade.Apply(s.ctx, game.ID, uid, session.CastVoteIntent{TargetID: daveID})
		s.Require().NoError(err)
	}
	s.Equal(model.StageResolved, game.Stage)
	s.Equal(model.WinnerNone, game.Winner)
	s.Len(game.ActivePlayers(), 3)

	// Round 2: the survivors vote the spy out
	game, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartVotingIntent{})
	s.Require().NoError(err)
	s.Equal(2, game.Round)

	for _, uid := range []model.UserID{hostID, bobID, carolID} {
		game, err = s.app.Facade.Apply(s.ctx, game.ID, uid, session.CastVoteIntent{TargetID: hostID})
		s.Require().NoError(err)
	}
	s.Equal(model.StageEnded, game.Stage)
	s.Equal(model.WinnerVillagers, game.Winner)
}

// Test: eliminated players are shut out of later rounds
func (s *IntegrationSuite) TestEliminatedPlayerCannotVote() {
	hostID := s.registerUser("host@example.com", "Host")
	bobID := s.registerUser("bob@example.com", "Bob")
	carolID := s.registerUser("carol@example.com", "Carol")
	daveID := s.registerUser("dave@example.com", "Dave")
	all := []model.UserID{hostID, bobID, carolID, daveID}

	s.app.MockRandom.QueueString("GAME12345678")
	game, err := s.app.Facade.CreateGame(s.ctx, hostID)
	s.Require().NoError(err)

	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.InviteIntent{
		InviteeIDs: []model.UserID{bobID, carolID, daveID},
	})
	s.Require().NoError(err)
	for _, uid := range all[1:] {
		pending, err := s.app.InvitationService.PendingFor(s.ctx, uid)
		s.Require().NoError(err)
		_, err = s.app.Facade.RespondToInvitation(s.ctx, pending[0].ID, uid, true)
		s.Require().NoError(err)
	}

	s.app.MockRandom.QueueIntn(0, 0)
	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartGameIntent{})
	s.Require().NoError(err)

	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartVotingIntent{})
	s.Require().NoError(err)
	for _, uid := range all {
		_, err = s.app.Facade.Apply(s.ctx, game.ID, uid, session.CastVoteIntent{TargetID: daveID})
		s.Require().NoError(err)
	}

	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.StartVotingIntent{})
	s.Require().NoError(err)

	_, err = s.app.Facade.Apply(s.ctx, game.ID, daveID, session.CastVoteIntent{TargetID: hostID})
	s.ErrorIs(err, model.ErrInvalidVoter)

	_, err = s.app.Facade.Apply(s.ctx, game.ID, hostID, session.CastVoteIntent{TargetID: daveID})
	s.ErrorIs(err, model.ErrInvalidTarget)
}
