package controllers

import (
	"net/http"

	"github.com/davidreyero/comboforge-backend/api/responses"
	"github.com/davidreyero/comboforge-backend/pkg/config"
	"github.com/davidreyero/comboforge-backend/pkg/db"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
	"github.com/davidreyero/comboforge-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ComboForge-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the datasources the API depends on. The cache pinger
// is nil when sessions run in process memory.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ComboForge-Env", cfg.App.Env)
		ctx := r.Context()

		checks := map[string]string{"db": "ok"}
		if err := database.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
		if cache != nil {
			checks["redis"] = "ok"
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
