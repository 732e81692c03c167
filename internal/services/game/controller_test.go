package game

import (
	"testing"
	"time"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/mocks"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/services/roles"
	"github.com/yatishgautam00/spy-game-local/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ControllerSuite struct {
	suite.Suite
	rolesService *roles.Service
	clock        *mocks.MockClock
	random       *mocks.MockRandom
	controller   *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.rolesService = roles.New(s.random, testutil.NopLogger())
	s.controller = NewController(s.rolesService, s.clock, s.random, testutil.NopLogger())
}

var testPair = model.WordPair{SpyWord: "cat", VillagerWord: "dog"}

func (s *ControllerSuite) newUser(id model.UserID) *model.User {
	return &model.User{ID: id, DisplayName: "Player " + string(id)}
}

// startedGame builds a game with the given players, started by the host,
// with the spy at the given index in join order.
func (s *ControllerSuite) startedGame(spyIdx int, uids ...model.UserID) *model.Game {
	s.random.QueueString("GAME12345678")
	g := s.controller.NewGame(s.newUser(uids[0]))
	for _, uid := range uids[1:] {
		s.Require().NoError(s.controller.Join(g, s.newUser(uid)))
	}
	s.random.QueueIntn(spyIdx)
	s.Require().NoError(s.controller.Start(g, uids[0], testPair))
	return g
}

// NewGame tests

func (s *ControllerSuite) TestNewGameSeatsHost() {
	s.random.QueueString("GAME12345678")

	g := s.controller.NewGame(s.newUser("u-host"))

	s.Equal(model.GameID("GAME12345678"), g.ID)
	s.Equal(model.StageWaiting, g.Stage)
	s.Equal(0, g.Round)
	s.Require().Len(g.Players, 1)
	s.Equal(model.UserID("u-host"), g.Players[0].UID)
	s.Equal(model.RoleUnassigned, g.Players[0].Role)
	s.Equal(model.UserID("u-host"), g.Host())
	s.Equal(model.WinnerNone, g.Winner)
}

// Join tests

func (s *ControllerSuite) TestJoinAddsPlayer() {
	s.random.QueueString("GAME12345678")
	g := s.controller.NewGame(s.newUser("u-host"))

	err := s.controller.Join(g, s.newUser("u-2"))
	s.Require().NoError(err)

	s.Len(g.Players, 2)
	s.Equal(model.UserID("u-2"), g.Players[1].UID)
}

func (s *ControllerSuite) TestJoinIsIdempotent() {
	s.random.QueueString("GAME12345678")
	g := s.controller.NewGame(s.newUser("u-host"))

	s.Require().NoError(s.controller.Join(g, s.newUser("u-2")))
	s.Require().NoError(s.controller.Join(g, s.newUser("u-2")))

	s.Len(g.Players, 2)
}

func (s *ControllerSuite) TestJoinFailsAfterStart() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")

	err := s.controller.Join(g, s.newUser("u-4"))
	s.ErrorIs(err, model.ErrGameAlreadyStarted)
	s.Len(g.Players, 3)
}

// Start tests

func (s *ControllerSuite) TestStartAssignsRolesAndWords() {
	g := s.startedGame(1, "u-host", "u-2", "u-3")

	s.Equal(model.StagePlaying, g.Stage)
	s.Equal(1, g.Round)
	s.Equal("cat", g.SpyWord)
	s.Equal("dog", g.VillagerWord)

	s.Equal(model.RoleVillager, g.Players[0].Role)
	s.Equal("dog", g.Players[0].Word)
	s.Equal(model.RoleSpy, g.Players[1].Role)
	s.Equal("cat", g.Players[1].Word)
	s.Equal(model.RoleVillager, g.Players[2].Role)
}

func (s *ControllerSuite) TestStartFailsForNonHost() {
	s.random.QueueString("GAME12345678")
	g := s.controller.NewGame(s.newUser("u-host"))
	s.Require().NoError(s.controller.Join(g, s.newUser("u-2")))
	s.Require().NoError(s.controller.Join(g, s.newUser("u-3")))

	err := s.controller.Start(g, "u-2", testPair)
	s.ErrorIs(err, model.ErrNotHost)
	s.Equal(model.StageWaiting, g.Stage)
}

func (s *ControllerSuite) TestStartFailsWithTooFewPlayers() {
	s.random.QueueString("GAME12345678")
	g := s.controller.NewGame(s.newUser("u-host"))
	s.Require().NoError(s.controller.Join(g, s.newUser("u-2")))

	err := s.controller.Start(g, "u-host", testPair)
	s.ErrorIs(err, model.ErrInsufficientPlayers)
	s.Equal(model.StageWaiting, g.Stage)
	s.Equal(model.RoleUnassigned, g.Players[0].Role)
}

func (s *ControllerSuite) TestStartFailsWhenAlreadyStarted() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")

	err := s.controller.Start(g, "u-host", testPair)
	s.ErrorIs(err, model.ErrGameAlreadyStarted)
}

// StartVoting tests

func (s *ControllerSuite) TestStartVotingFromPlaying() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")

	err := s.controller.StartVoting(g, "u-host")
	s.Require().NoError(err)

	s.Equal(model.StageVoting, g.Stage)
	s.Equal(1, g.Round)
	s.Empty(g.Votes)
	s.Nil(g.EliminatedPlayer)
}

func (s *ControllerSuite) TestStartVotingFailsForNonHost() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")

	err := s.controller.StartVoting(g, "u-2")
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *ControllerSuite) TestStartVotingFailsBeforeStart() {
	s.random.QueueString("GAME12345678")
	g := s.controller.NewGame(s.newUser("u-host"))

	err := s.controller.StartVoting(g, "u-host")
	s.ErrorIs(err, model.ErrGameNotStarted)
}

func (s *ControllerSuite) TestStartVotingFailsWhenAlreadyVoting() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-host"))

	err := s.controller.StartVoting(g, "u-host")
	s.ErrorIs(err, model.ErrAlreadyVoting)
}

func (s *ControllerSuite) TestStartVotingAfterResolvedBeginsNextRound() {
	// 4 players, spy is u-4; villager u-2 eliminated round 1
	g := s.startedGame(3, "u-1", "u-2", "u-3", "u-4")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))
	for _, voter := range []model.UserID{"u-1", "u-2", "u-3", "u-4"} {
		s.Require().NoError(s.controller.CastVote(g, voter, "u-2"))
	}
	s.Require().Equal(model.StageResolved, g.Stage)

	err := s.controller.StartVoting(g, "u-1")
	s.Require().NoError(err)

	s.Equal(model.StageVoting, g.Stage)
	s.Equal(2, g.Round)
	s.Empty(g.Votes)
	s.Nil(g.EliminatedPlayer)
}

func (s *ControllerSuite) TestStartVotingFailsAfterGameEnds() {
	g := s.startedGame(1, "u-1", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))
	for _, voter := range []model.UserID{"u-1", "u-2", "u-3"} {
		s.Require().NoError(s.controller.CastVote(g, voter, "u-2"))
	}
	s.Require().Equal(model.StageEnded, g.Stage)

	err := s.controller.StartVoting(g, "u-1")
	s.ErrorIs(err, model.ErrGameOver)
}

// CastVote tests

func (s *ControllerSuite) TestCastVoteRecordsVote() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-host"))

	err := s.controller.CastVote(g, "u-2", "u-3")
	s.Require().NoError(err)

	s.Equal(model.UserID("u-3"), g.Votes["u-2"])
	s.Equal(model.StageVoting, g.Stage)
}

func (s *ControllerSuite) TestCastVoteAllowsSelfVote() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-host"))

	err := s.controller.CastVote(g, "u-2", "u-2")
	s.Require().NoError(err)
	s.Equal(model.UserID("u-2"), g.Votes["u-2"])
}

func (s *ControllerSuite) TestCastVoteFailsOutsideVoting() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")

	err := s.controller.CastVote(g, "u-2", "u-3")
	s.ErrorIs(err, model.ErrNotVoting)
}

func (s *ControllerSuite) TestCastVoteFailsForNonPlayer() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-host"))

	err := s.controller.CastVote(g, "u-unknown", "u-2")
	s.ErrorIs(err, model.ErrInvalidVoter)
}

func (s *ControllerSuite) TestCastVoteFailsWhenAlreadyVoted() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-host"))
	s.Require().NoError(s.controller.CastVote(g, "u-2", "u-3"))

	err := s.controller.CastVote(g, "u-2", "u-host")
	s.ErrorIs(err, model.ErrAlreadyVoted)
	s.Equal(model.UserID("u-3"), g.Votes["u-2"])
}

func (s *ControllerSuite) TestCastVoteFailsForUnknownTarget() {
	g := s.startedGame(0, "u-host", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-host"))

	err := s.controller.CastVote(g, "u-2", "u-unknown")
	s.ErrorIs(err, model.ErrInvalidTarget)
}

func (s *ControllerSuite) TestEliminatedPlayerCannotVoteOrBeVoted() {
	g := s.startedGame(3, "u-1", "u-2", "u-3", "u-4")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))
	for _, voter := range []model.UserID{"u-1", "u-2", "u-3", "u-4"} {
		s.Require().NoError(s.controller.CastVote(g, voter, "u-2"))
	}
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))

	s.ErrorIs(s.controller.CastVote(g, "u-2", "u-3"), model.ErrInvalidVoter)
	s.ErrorIs(s.controller.CastVote(g, "u-3", "u-2"), model.ErrInvalidTarget)
}

// Resolution tests

func (s *ControllerSuite) TestSpyEliminationEndsGameForVillagers() {
	g := s.startedGame(1, "u-1", "u-2", "u-3", "u-4")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))

	for _, voter := range []model.UserID{"u-1", "u-2", "u-3", "u-4"} {
		s.Require().NoError(s.controller.CastVote(g, voter, "u-2"))
	}

	s.Equal(model.StageEnded, g.Stage)
	s.Equal(model.WinnerVillagers, g.Winner)
	s.Require().NotNil(g.EliminatedPlayer)
	s.Equal(model.UserID("u-2"), *g.EliminatedPlayer)
	s.True(g.GetPlayer("u-2").Eliminated)
}

func (s *ControllerSuite) TestVillagerEliminationLeavingTwoEndsGameForSpy() {
	g := s.startedGame(0, "u-1", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))

	for _, voter := range []model.UserID{"u-1", "u-2", "u-3"} {
		s.Require().NoError(s.controller.CastVote(g, voter, "u-3"))
	}

	s.Equal(model.StageEnded, g.Stage)
	s.Equal(model.WinnerSpy, g.Winner)
	s.True(g.GetPlayer("u-3").Eliminated)
}

func (s *ControllerSuite) TestVillagerEliminationWithPlayersLeftResolvesRound() {
	g := s.startedGame(3, "u-1", "u-2", "u-3", "u-4")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))

	for _, voter := range []model.UserID{"u-1", "u-2", "u-3", "u-4"} {
		s.Require().NoError(s.controller.CastVote(g, voter, "u-3"))
	}

	s.Equal(model.StageResolved, g.Stage)
	s.Equal(model.WinnerNone, g.Winner)
	s.Len(g.ActivePlayers(), 3)
	s.Len(g.Votes, 4)
}

func (s *ControllerSuite) TestResolutionHappensWithFinalVote() {
	g := s.startedGame(0, "u-1", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))

	s.Require().NoError(s.controller.CastVote(g, "u-1", "u-3"))
	s.Require().NoError(s.controller.CastVote(g, "u-2", "u-3"))
	s.Equal(model.StageVoting, g.Stage)

	s.Require().NoError(s.controller.CastVote(g, "u-3", "u-1"))
	s.Equal(model.StageEnded, g.Stage)
}

func (s *ControllerSuite) TestTieEliminatesLowestUID() {
	// each player votes for a different target, a three-way tie
	g := s.startedGame(0, "u-b", "u-a", "u-c")
	s.Require().NoError(s.controller.StartVoting(g, "u-b"))

	s.Require().NoError(s.controller.CastVote(g, "u-b", "u-a"))
	s.Require().NoError(s.controller.CastVote(g, "u-a", "u-c"))
	s.Require().NoError(s.controller.CastVote(g, "u-c", "u-b"))

	s.Require().NotNil(g.EliminatedPlayer)
	s.Equal(model.UserID("u-a"), *g.EliminatedPlayer)
}

func (s *ControllerSuite) TestMajorityBeatsTieBreak() {
	g := s.startedGame(3, "u-a", "u-b", "u-c", "u-d")
	s.Require().NoError(s.controller.StartVoting(g, "u-a"))

	s.Require().NoError(s.controller.CastVote(g, "u-a", "u-c"))
	s.Require().NoError(s.controller.CastVote(g, "u-b", "u-c"))
	s.Require().NoError(s.controller.CastVote(g, "u-c", "u-a"))
	s.Require().NoError(s.controller.CastVote(g, "u-d", "u-b"))

	s.Require().NotNil(g.EliminatedPlayer)
	s.Equal(model.UserID("u-c"), *g.EliminatedPlayer)
}

// Reset tests

func (s *ControllerSuite) TestResetRestoresFullRoster() {
	g := s.startedGame(1, "u-1", "u-2", "u-3", "u-4")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))
	for _, voter := range []model.UserID{"u-1", "u-2", "u-3", "u-4"} {
		s.Require().NoError(s.controller.CastVote(g, voter, "u-2"))
	}
	s.Require().Equal(model.StageEnded, g.Stage)

	newPair := model.WordPair{SpyWord: "tea", VillagerWord: "coffee"}
	s.random.QueueIntn(2)
	err := s.controller.Reset(g, "u-3", newPair)
	s.Require().NoError(err)

	s.Equal(model.StagePlaying, g.Stage)
	s.Equal(1, g.Round)
	s.Equal(model.WinnerNone, g.Winner)
	s.Nil(g.EliminatedPlayer)
	s.Empty(g.Votes)
	s.Equal("tea", g.SpyWord)
	s.Equal("coffee", g.VillagerWord)
	s.Len(g.ActivePlayers(), 4)
	for _, p := range g.Players {
		s.False(p.Eliminated)
		s.True(p.Active)
	}
	s.Equal(model.RoleSpy, g.Players[2].Role)
	s.Equal("tea", g.Players[2].Word)
}

func (s *ControllerSuite) TestResetFailsBeforeGameEnds() {
	g := s.startedGame(0, "u-1", "u-2", "u-3")

	err := s.controller.Reset(g, "u-1", testPair)
	s.ErrorIs(err, model.ErrGameNotEnded)
}

func (s *ControllerSuite) TestResetFailsForOutsider() {
	g := s.startedGame(1, "u-1", "u-2", "u-3")
	s.Require().NoError(s.controller.StartVoting(g, "u-1"))
	for _, voter := range []model.UserID{"u-1", "u-2", "u-3"} {
		s.Require().NoError(s.controller.CastVote(g, voter, "u-2"))
	}
	s.Require().Equal(model.StageEnded, g.Stage)

	err := s.controller.Reset(g, "u-stranger", testPair)
	s.ErrorIs(err, model.ErrNotInGame)
}

func (s *ControllerSuite) TestUpdatedAtTracksClock() {
	s.random.QueueString("GAME12345678")
	g := s.controller.NewGame(s.newUser("u-host"))
	created := g.UpdatedAt

	s.clock.Advance(5 * time.Minute)
	s.Require().NoError(s.controller.Join(g, s.newUser("u-2")))

	s.Equal(created.Add(5*time.Minute), g.UpdatedAt)
}
