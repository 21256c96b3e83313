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

	"github.com/Dosada05/youth-cup/brackets"
	"github.com/Dosada05/youth-cup/config"
	"github.com/Dosada05/youth-cup/db"
	"github.com/Dosada05/youth-cup/handlers"
	"github.com/Dosada05/youth-cup/metrics"
	"github.com/Dosada05/youth-cup/repositories"
	api "github.com/Dosada05/youth-cup/routes"
	"github.com/Dosada05/youth-cup/services"
	"github.com/Dosada05/youth-cup/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 15 * time.Second

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("log_level", cfg.LogLevel.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tournament records: Postgres when configured, otherwise kept in memory.
	var repo repositories.TournamentRepository
	if cfg.DatabaseURL != "" {
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
		if err := db.Migrate(ctx, dbConn); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		repo = repositories.NewPostgresTournamentRepository(dbConn)
		logger.Info("database connection established")
	} else {
		repo = repositories.NewMemoryTournamentRepository()
		logger.Warn("DATABASE_URL not set, tournaments are kept in memory")
	}

	// Public mirror: Redis when configured.
	var mirror repositories.PublicMirror
	if cfg.RedisAddr != "" {
		m, closeRedis, err := repositories.NewRedisPublicMirror(ctx, repositories.RedisMirrorConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer closeRedis()
		mirror = m
		logger.Info("redis public mirror connected", slog.String("addr", cfg.RedisAddr))
	} else {
		mirror = repositories.NewMemoryPublicMirror()
	}

	// Team logos: Cloudflare R2, or disabled.
	var uploader storage.FileUploader
	r2cfg := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2cfg.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, r2cfg)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 not configured, team logo uploads disabled")
	}

	metricsService := metrics.NewService()

	wsHub := brackets.NewHub(logger)
	wsHub.OnClientsChanged(metricsService.SetWebsocketClients)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	store := services.NewStore(services.Dependencies{
		Repo:            repo,
		Mirror:          mirror,
		Broadcaster:     wsHub,
		Uploader:        uploader,
		Metrics:         metricsService,
		StandingsLocale: cfg.StandingsLocale,
		Logger:          logger,
	})
	tournamentService := services.NewTournamentService(store)
	matchService := services.NewMatchService(store)
	authService := services.NewAuthService(store, cfg.JWTSecretKey, cfg.AdminTokenTTL)

	liveService := services.NewLiveService(store, wsHub, cfg.ClockBroadcastInterval)
	liveService.Start(ctx)
	defer liveService.Stop()

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService, authService),
		Auth:       handlers.NewAuthHandler(authService),
		Team:       handlers.NewTeamHandler(tournamentService),
		Match:      handlers.NewMatchHandler(matchService),
		Public:     handlers.NewPublicHandler(tournamentService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins),
		Metrics:    metrics.NewMetricsHandler(),
	}, authService, cfg.CORSAllowedOrigins, logger)

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
	metricsService.SetStartupTime(time.Since(startedAt).Seconds())

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
