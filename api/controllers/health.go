package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shopfrontdev/shopfront-backend/api/responses"
	"github.com/shopfrontdev/shopfront-backend/pkg/config"
	"github.com/shopfrontdev/shopfront-backend/pkg/db"
	"github.com/shopfrontdev/shopfront-backend/pkg/logger"
	"github.com/shopfrontdev/shopfront-backend/pkg/redis"
)

const readinessTimeout = 3 * time.Second

// HealthLive reports process liveness; it never touches dependencies.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady pings the database and, when configured, redis. A failing
// dependency yields 503 so the platform stops routing traffic here.
func HealthReady(logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			checks["database"] = "ok"
			if err := dbP.Ping(ctx); err != nil {
				checks["database"] = "unreachable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness database ping failed", err)
				}
			}
		}

		if redisP != nil {
			checks["redis"] = "ok"
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "unreachable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness redis ping failed", err)
				}
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, checks)
	}
}
