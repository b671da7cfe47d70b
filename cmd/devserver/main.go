// Command devserver runs the bundled reference inventory API: a REST
// backend over SQLite or Postgres that the console talks to in local
// development.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/KennethTannn98/stockflow-console/api/middleware"
	"github.com/KennethTannn98/stockflow-console/api/routes"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/db"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/env"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/instance"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
)

const (
	shutdownGrace  = 10 * time.Second
	idempotencyTTL = 15 * time.Minute

	seedAdminUsername = "admin"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "devserver"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "devserver",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	if err := dbClient.Migrate(); err != nil {
		logg.Error(context.Background(), "failed to migrate database", err)
		os.Exit(1)
	}

	st, err := store.New(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build store", err)
		os.Exit(1)
	}

	if err := seedAdmin(context.Background(), cfg, logg, st); err != nil {
		logg.Error(context.Background(), "failed to seed admin account", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	addr := ":" + cfg.Server.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Store:       st,
			Registry:    registry,
			Idempotency: middleware.NewIdempotencyStore(idempotencyTTL),
		}),
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"driver":   cfg.DB.Driver,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting devserver")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "devserver stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down")
		graceCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		err := server.Shutdown(graceCtx)
		err = multierr.Append(err, dbClient.Close())
		if err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}

// seedAdmin creates the initial admin account when the user table is empty,
// so a fresh database is immediately reachable through the login endpoint.
func seedAdmin(ctx context.Context, cfg *config.Config, logg *logger.Logger, st *store.Store) error {
	users, err := st.Users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	password := env.Get("STOCKFLOW_SEED_ADMIN_PASSWORD", "")
	if password == "" {
		if cfg.App.IsProd() {
			return pkgerrors.New(pkgerrors.CodeInternal, "STOCKFLOW_SEED_ADMIN_PASSWORD must be set to seed the first admin")
		}
		password = "stockflow-dev"
	}

	_, err = st.Users.Create(ctx, seedAdminUsername, password, enums.RoleAdmin, cfg.Password, "system")
	if err != nil {
		return err
	}
	logg.Info(logg.WithUsername(ctx, seedAdminUsername), "seeded initial admin account")
	return nil
}
