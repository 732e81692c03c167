package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/clock"
	"github.com/yatishgautam00/spy-game-local/internal/dependencies/random"
	"github.com/yatishgautam00/spy-game-local/internal/services/game"
	"github.com/yatishgautam00/spy-game-local/internal/services/identity"
	"github.com/yatishgautam00/spy-game-local/internal/services/invitation"
	"github.com/yatishgautam00/spy-game-local/internal/services/roles"
	"github.com/yatishgautam00/spy-game-local/internal/services/words"
	"github.com/yatishgautam00/spy-game-local/internal/session"
	"github.com/yatishgautam00/spy-game-local/internal/sse"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
	"github.com/yatishgautam00/spy-game-local/internal/storage/memory"
	redisstorage "github.com/yatishgautam00/spy-game-local/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RolesService      *roles.Service
	WordsService      *words.Service
	InvitationService *invitation.Service
	GameController    *game.Controller
	IdentityService   *identity.Service
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster
	Facade            *session.Facade
}

// Config holds configuration for the application factory
type Config struct {
	// WordPairsPath is the path to a word pairs file (optional)
	// If empty, word pairs must be loaded separately
	WordPairsPath string
	// IdentityConfig holds configuration for the identity service (optional)
	// If zero value, defaults to identity.DefaultConfig()
	IdentityConfig identity.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default identity config if not provided
	identityCfg := cfg.IdentityConfig
	if identityCfg.SessionDuration == 0 {
		identityCfg = identity.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, identityCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, identityCfg identity.Config, logger *slog.Logger) *App {
	// Create services
	rolesService := roles.New(rnd, logger)
	wordsService := words.New(store, rnd)
	invitationService := invitation.New(store, clk, logger)
	gameController := game.NewController(rolesService, clk, rnd, logger)
	identityService := identity.New(store, clk, identityCfg)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	facade := session.New(store, gameController, invitationService, wordsService, broadcaster, clk, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		RolesService:      rolesService,
		WordsService:      wordsService,
		InvitationService: invitationService,
		GameController:    gameController,
		IdentityService:   identityService,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
		Facade:            facade,
	}
}
