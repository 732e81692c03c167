package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/yatishgautam00/spy-game-local/internal/api"
	"github.com/yatishgautam00/spy-game-local/internal/factory"
	redisstorage "github.com/yatishgautam00/spy-game-local/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	wordPairsPath := os.Getenv("WORD_PAIRS_PATH")
	if wordPairsPath == "" {
		wordPairsPath = "data/word_pairs.txt"
	}

	// Build factory config from environment
	cfg := factory.Config{
		WordPairsPath: wordPairsPath,
		Logger:        logger,
		StorageType:   os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the word pair catalogue: file first, then whatever a previous
	// run saved to storage, then the built-in defaults
	ctx := context.Background()
	if err := app.WordsService.LoadFromFile(ctx, wordPairsPath); err != nil {
		logger.Warn("could not load word pairs from file", slog.String("path", wordPairsPath), slog.String("error", err.Error()))
		if err := app.WordsService.LoadFromStorage(ctx); err != nil || !app.WordsService.IsLoaded() {
			if err := app.WordsService.LoadDefaults(ctx); err != nil {
				logger.Error("failed to load default word pairs", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}
	logger.Info("word pairs loaded", slog.Int("count", app.WordsService.PairCount()))

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		IdentityService:   app.IdentityService,
		Facade:            app.Facade,
		InvitationService: app.InvitationService,
		HubManager:        app.HubManager,
		Storage:           app.Storage,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", portEnv))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	shutdownCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
