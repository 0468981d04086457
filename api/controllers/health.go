package controllers

import (
	"context"
	"net/http"

	"github.com/fairwayev/quotedesk-backend/api/responses"
	"github.com/fairwayev/quotedesk-backend/pkg/config"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
)

// Pinger is the connectivity probe each backing dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-QuoteDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database and redis both answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-QuoteDesk-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		for name, p := range map[string]Pinger{"database": dbP, "redis": redisP} {
			if p == nil {
				checks[name] = "skipped"
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logg.Error(logg.WithField(r.Context(), "dependency", name), "readiness probe failed", err)
				}
				continue
			}
			checks[name] = "up"
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
