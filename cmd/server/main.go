package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/voxa-backend/internal/auth"
	"github.com/AnshRaj112/voxa-backend/internal/config"
	"github.com/AnshRaj112/voxa-backend/internal/database"
	"github.com/AnshRaj112/voxa-backend/internal/logger"
	"github.com/AnshRaj112/voxa-backend/internal/repository"
	"github.com/AnshRaj112/voxa-backend/internal/routes"
	"github.com/AnshRaj112/voxa-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(!cfg.IsProduction(), cfg.SentryDSN)
	defer logger.Flush(2 * time.Second)

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	started := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongo, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(context.Background()); err != nil {
			slog.Warn("mongodb disconnect failed", "error", err)
		}
	}()
	if err := mongo.EnsureIndexes(ctx); err != nil {
		slog.Warn("failed to ensure MongoDB indexes", "error", err)
	}

	var rdb *redis.Client
	if cfg.RedisURI != "" {
		rdb, err = database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			return err
		}
		defer rdb.Close()
	} else {
		slog.Warn("REDIS_URI not set, rate limiting disabled")
	}

	var verifier auth.Verifier
	switch cfg.AuthProvider {
	case config.AuthProviderSession:
		verifier = auth.NewSessionStore(rdb)
	default:
		keys, err := auth.NewGoogleKeys(ctx, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			return err
		}
		verifier = auth.NewFirebaseVerifier(cfg.FirebaseProjectID, keys)
	}
	slog.Info("authentication configured", "provider", cfg.AuthProvider)

	audio, err := audioService(ctx, cfg)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	handler := routes.Setup(routes.Deps{
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHost:    cfg.AllowedHost,
		Verifier:       verifier,
		Journals:       services.NewJournalService(repository.NewJournalRepository(mongo.DB), nil),
		Moods:          services.NewMoodService(repository.NewMoodRepository(mongo.DB), nil),
		Goals:          services.NewGoalService(repository.NewGoalRepository(mongo.DB), nil),
		Audio:          audio,
		Redis:          rdb,
		Done:           done,
		Started:        started,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Voxa backend running", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// audioService returns nil when no storage backend is configured; the upload route is then not mounted.
func audioService(ctx context.Context, cfg *config.Config) (*services.AudioService, error) {
	var store services.AudioStore
	switch cfg.AudioStorage {
	case config.AudioStorageCloudinary:
		s, err := services.NewCloudinaryStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, err
		}
		store = s
	case config.AudioStorageS3:
		s, err := services.NewS3Store(ctx, services.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, err
		}
		store = s
	default:
		slog.Warn("AUDIO_STORAGE not set, audio uploads disabled")
		return nil, nil
	}
	slog.Info("audio storage configured", "backend", cfg.AudioStorage)
	return services.NewAudioService(store, nil), nil
}
