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

	"github.com/joho/godotenv"
	"github.com/quran-api-nosql/internal/config"
	"github.com/quran-api-nosql/internal/infrastructure/dynamo"
	jwtinfra "github.com/quran-api-nosql/internal/infrastructure/jwt"
	"github.com/quran-api-nosql/internal/infrastructure/quran"
	"github.com/quran-api-nosql/internal/logging"
	transporthttp "github.com/quran-api-nosql/internal/transport/http"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Info("no .env file found, reading from environment")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return fmt.Errorf("jwt provider: %w", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:     dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		BookmarkRepo: dynamo.NewBookmarkRepo(dynamoClient, cfg.DynamoTables.Bookmarks),
		JWTProvider:  jwtProvider,
		Recitations:  quran.NewClient(cfg.Quran),
		Logger:       logger,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
