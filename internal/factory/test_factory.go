package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/mocks"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/services/identity"
	"github.com/yatishgautam00/spy-game-local/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockRandom, identity.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWordPairs loads a small word pair set for testing
func (t *TestApp) LoadTestWordPairs() error {
	return t.WordsService.LoadPairs([]model.WordPair{
		{SpyWord: "cat", VillagerWord: "dog"},
		{SpyWord: "tea", VillagerWord: "coffee"},
		{SpyWord: "ship", VillagerWord: "boat"},
	})
}
