package words

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/random"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
)

// DefaultPairs is the built-in catalogue used when no file is loaded
var DefaultPairs = []model.WordPair{
	{SpyWord: "apple", VillagerWord: "banana"},
	{SpyWord: "cat", VillagerWord: "dog"},
	{SpyWord: "coffee", VillagerWord: "tea"},
	{SpyWord: "beach", VillagerWord: "desert"},
	{SpyWord: "train", VillagerWord: "bus"},
	{SpyWord: "violin", VillagerWord: "guitar"},
	{SpyWord: "winter", VillagerWord: "summer"},
	{SpyWord: "pizza", VillagerWord: "burger"},
}

// Service manages the word pair catalogue games draw from
type Service struct {
	storage storage.Storage
	random  random.Random

	mu     sync.RWMutex
	pairs  []model.WordPair
	loaded bool
}

// New creates a new word pair service
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
	}
}

// LoadDefaults loads the built-in catalogue and persists it
func (s *Service) LoadDefaults(ctx context.Context) error {
	if err := s.storage.SaveWordPairs(ctx, DefaultPairs); err != nil {
		return err
	}
	return s.loadPairs(DefaultPairs)
}

// LoadFromStorage loads word pairs previously saved to storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	pairs, err := s.storage.GetWordPairs(ctx)
	if err != nil {
		return err
	}
	return s.loadPairs(pairs)
}

// LoadFromFile loads word pairs from a file, one "spyWord,villagerWord"
// pair per line. Blank lines and lines starting with # are skipped.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var pairs []model.WordPair
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		spyWord, villagerWord, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		pairs = append(pairs, model.WordPair{
			SpyWord:      strings.TrimSpace(spyWord),
			VillagerWord: strings.TrimSpace(villagerWord),
		})
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(pairs) == 0 {
		return model.ErrNoWordPairs
	}

	// Save to storage for future use
	if err := s.storage.SaveWordPairs(ctx, pairs); err != nil {
		return err
	}

	return s.loadPairs(pairs)
}

// LoadPairs directly loads a slice of pairs (useful for testing)
func (s *Service) LoadPairs(pairs []model.WordPair) error {
	return s.loadPairs(pairs)
}

func (s *Service) loadPairs(pairs []model.WordPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pairs = make([]model.WordPair, len(pairs))
	copy(s.pairs, pairs)
	s.loaded = true
	return nil
}

// RandomPair picks a pair uniformly from the catalogue
func (s *Service) RandomPair() (model.WordPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded || len(s.pairs) == 0 {
		return model.WordPair{}, model.ErrNoWordPairs
	}
	return s.pairs[s.random.Intn(len(s.pairs))], nil
}

// IsLoaded returns whether a catalogue has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// PairCount returns the number of pairs in the catalogue
func (s *Service) PairCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pairs)
}
