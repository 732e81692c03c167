package roles

import (
	"log/slog"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/random"
	"github.com/yatishgautam00/spy-game-local/internal/model"
)

// MinPlayers is the smallest roster a round can be played with
const MinPlayers = 3

// Service assigns secret roles and words to a roster
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new role assignment service
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger,
	}
}

// Assign deals exactly one spy, chosen uniformly over the roster, and gives
// everyone else the villager role and word. Every player comes back active,
// un-eliminated and un-ready, so the same call serves game start and reset.
// The input slice is not modified.
func (s *Service) Assign(players []model.Player, pair model.WordPair) ([]model.Player, error) {
	if len(players) < MinPlayers {
		return nil, model.ErrInsufficientPlayers
	}

	spyIdx := s.random.Intn(len(players))

	assigned := make([]model.Player, len(players))
	for i, p := range players {
		p.Role = model.RoleVillager
		p.Word = pair.VillagerWord
		if i == spyIdx {
			p.Role = model.RoleSpy
			p.Word = pair.SpyWord
		}
		p.Active = true
		p.Eliminated = false
		p.Ready = false
		assigned[i] = p
	}

	s.logger.Debug("roles assigned",
		slog.Int("player_count", len(players)),
		slog.Int("spy_index", spyIdx),
	)

	return assigned, nil
}
