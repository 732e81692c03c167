package words

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/mocks"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random)
	s.ctx = context.Background()
}

func (s *ServiceSuite) writeFile(content string) string {
	path := filepath.Join(s.T().TempDir(), "pairs.txt")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0644))
	return path
}

func (s *ServiceSuite) TestRandomPairBeforeLoad() {
	_, err := s.service.RandomPair()
	s.ErrorIs(err, model.ErrNoWordPairs)
}

func (s *ServiceSuite) TestLoadDefaults() {
	err := s.service.LoadDefaults(s.ctx)
	s.Require().NoError(err)
	s.True(s.service.IsLoaded())
	s.Equal(len(DefaultPairs), s.service.PairCount())

	// Defaults are persisted for future runs
	saved, err := s.storage.GetWordPairs(s.ctx)
	s.Require().NoError(err)
	s.Len(saved, len(DefaultPairs))
}

func (s *ServiceSuite) TestLoadFromFile() {
	path := s.writeFile("# comment line\n\ncat,dog\ntea, coffee\nmalformed line\n")

	err := s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal(2, s.service.PairCount())

	s.random.QueueIntn(1)
	pair, err := s.service.RandomPair()
	s.Require().NoError(err)
	s.Equal("tea", pair.SpyWord)
	s.Equal("coffee", pair.VillagerWord)
}

func (s *ServiceSuite) TestLoadFromFilePersistsToStorage() {
	path := s.writeFile("cat,dog\n")

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	saved, err := s.storage.GetWordPairs(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(saved, 1)
	s.Equal("cat", saved[0].SpyWord)
}

func (s *ServiceSuite) TestLoadFromFileNoUsableLines() {
	path := s.writeFile("# only comments\n\n")

	err := s.service.LoadFromFile(s.ctx, path)
	s.ErrorIs(err, model.ErrNoWordPairs)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestLoadFromFileMissing() {
	err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "missing.txt"))
	s.Error(err)
}

func (s *ServiceSuite) TestLoadFromStorage() {
	pairs := []model.WordPair{{SpyWord: "ship", VillagerWord: "boat"}}
	s.Require().NoError(s.storage.SaveWordPairs(s.ctx, pairs))

	err := s.service.LoadFromStorage(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, s.service.PairCount())
}

func (s *ServiceSuite) TestRandomPairDrawsUniformly() {
	pairs := []model.WordPair{
		{SpyWord: "cat", VillagerWord: "dog"},
		{SpyWord: "tea", VillagerWord: "coffee"},
		{SpyWord: "ship", VillagerWord: "boat"},
	}
	s.Require().NoError(s.service.LoadPairs(pairs))

	s.random.QueueIntn(2, 0)

	pair, err := s.service.RandomPair()
	s.Require().NoError(err)
	s.Equal("ship", pair.SpyWord)

	pair, err = s.service.RandomPair()
	s.Require().NoError(err)
	s.Equal("cat", pair.SpyWord)
}
