package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/esports-scoreboard/config"
	"github.com/Dosada05/esports-scoreboard/db"
	"github.com/Dosada05/esports-scoreboard/handlers"
	"github.com/Dosada05/esports-scoreboard/live"
	"github.com/Dosada05/esports-scoreboard/repositories"
	api "github.com/Dosada05/esports-scoreboard/routes"
	"github.com/Dosada05/esports-scoreboard/services"
	"github.com/Dosada05/esports-scoreboard/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("cors_origin", cfg.CORSOrigin))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Logo storage is optional: without R2 settings the scoreboard runs
	// with logo features disabled.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	libraryRepo := repositories.NewPostgresTeamLibraryRepository(dbConn)
	standingsRepo := repositories.NewPostgresStandingsRepository(dbConn)
	logger.Info("repositories initialized")

	standingsService := services.NewStandingsService(standingsRepo, matchRepo, uploader)
	notifier := live.NewHubNotifier(wsHub, standingsService, logger)

	gameService := services.NewGameService(gameRepo, notifier)
	matchService := services.NewMatchService(matchRepo, gameRepo, notifier)
	teamService := services.NewTeamService(dbConn, teamRepo, scoreRepo, matchRepo, libraryRepo, uploader, notifier)
	scoreService := services.NewScoreService(scoreRepo, notifier)
	libraryService := services.NewTeamLibraryService(libraryRepo, uploader)
	logger.Info("services initialized")

	gameHandler := handlers.NewGameHandler(gameService, matchService)
	matchHandler := handlers.NewMatchHandler(matchService, teamService)
	teamHandler := handlers.NewTeamHandler(teamService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	libraryHandler := handlers.NewTeamLibraryHandler(libraryService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, cfg.CORSOrigin, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.CORSOrigin,
		gameHandler,
		matchHandler,
		teamHandler,
		scoreHandler,
		standingsHandler,
		libraryHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
