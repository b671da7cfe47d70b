package controllers

import (
	"net/http"

	"github.com/KennethTannn98/stockflow-console/api/responses"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/db"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady reports readiness, checking the database.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
