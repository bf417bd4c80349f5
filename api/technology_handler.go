package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type technologyHandler struct {
	responder      Responder
	technologyRepo TechnologyRepository
}

func newTechnologyHandler(technologyRepo TechnologyRepository) technologyHandler {
	logger := log.With().Str("handlerName", "technologyHandler").Logger()

	return technologyHandler{
		responder:      NewResponder(logger),
		technologyRepo: technologyRepo,
	}
}

// getAllTechnologies lists the supported technologies.
// @Router /technologies [get]
func (h technologyHandler) getAllTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologies, err := h.technologyRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find technologies", "technologies", err))
			return
		}

		h.responder.WriteJSON(w, technologies)
	}
}

const healthPingTimeout = 2 * time.Second

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          Pinger
	startupTime time.Time
}

func newHealthHandler(db Pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

// getHealth reports uptime and whether the database answers a ping.
// @Router /health [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
		}

		status := http.StatusOK
		if h.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()

			if err := h.db.Ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("database ping failed")
				response.Status = "degraded"
				response.Database = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}

		h.responder.WriteJSONStatus(w, status, response)
	}
}
