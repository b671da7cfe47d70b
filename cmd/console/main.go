// Command console runs the interactive inventory console against a running
// API server.
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/KennethTannn98/stockflow-console/internal/cache"
	"github.com/KennethTannn98/stockflow-console/internal/client"
	"github.com/KennethTannn98/stockflow-console/internal/console"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/redis"
	"github.com/KennethTannn98/stockflow-console/pkg/session"
)

func main() {
	_ = godotenv.Load()

	// The terminal belongs to the shell, so logs stay quiet unless asked for.
	logg := logger.New(logger.Options{ServiceName: "console", Level: zerolog.ErrorLevel})

	cfg, err := config.Load()
	if err != nil {
		fail(logg, "failed to load config", err)
	}
	if cfg.App.LogLevel != "" {
		logg = logger.New(logger.Options{
			ServiceName: "console",
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			WarnStack:   cfg.App.LogWarnStack,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess, err := sessionStore(cfg.Session)
	if err != nil {
		fail(logg, "failed to open session store", err)
	}

	store, closeStore, err := cacheStore(ctx, cfg, logg)
	if err != nil {
		fail(logg, "failed to build query cache", err)
	}
	defer closeStore()

	api := client.New(sess,
		client.WithBaseURL(cfg.API.BaseURL),
		client.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)

	shell := console.New(os.Stdin, os.Stdout, api, store, sess, logg)
	if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		fail(logg, "console stopped unexpectedly", err)
	}
}

// sessionStore keeps the token next to the user's config, so a restart
// resumes the signed-in session.
func sessionStore(cfg config.SessionConfig) (session.Provider, error) {
	path := cfg.Path
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return session.NewMemoryStore(), nil
		}
		path = filepath.Join(configDir, "stockflow", "session.json")
	}
	return session.NewFileStore(path)
}

// cacheStore builds the query cache the config asks for: redis when
// requested and reachable, in-process memory otherwise.
func cacheStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (cache.Store, func(), error) {
	if !cfg.Cache.UseRedis() {
		return cache.NewMemory(cfg.Cache.TTL), func() {}, nil
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.NewRedis(redisClient, cfg.Cache.TTL)
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, err
	}
	closeStore := func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}
	return store, closeStore, nil
}

func fail(logg *logger.Logger, message string, err error) {
	logg.Error(context.Background(), message, err)
	os.Exit(1)
}
