package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devtrack/backend/database"
	"github.com/devtrack/backend/errs"
)

type developerHandler struct {
	responder      Responder
	logger         zerolog.Logger
	checks         checks
	developerRepo  DeveloperRepository
	developerInfos DeveloperInfoRepository
}

func newDeveloperHandler(repos Repositories) developerHandler {
	logger := log.With().Str("handlerName", "developerHandler").Logger()

	return developerHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		checks:         newChecks(repos),
		developerRepo:  repos.Developers,
		developerInfos: repos.DeveloperInfos,
	}
}

// getAllDevelopers lists every developer.
// @Router /developers [get]
func (h developerHandler) getAllDevelopers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		developers, err := h.developerRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find developers", "developers", err))
			return
		}

		h.responder.WriteJSON(w, developers)
	}
}

// createDeveloper creates a developer with a unique email.
// @Router /developers [post]
func (h developerHandler) createDeveloper() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.decodeDeveloper(),
		h.checks.developerEmailUnique(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		developer := s.developer
		if err := h.developerRepo.Add(r.Context(), &developer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create developer", "developer", err))
			return
		}

		event := h.logger.Info().Int64("developerId", developer.ID)
		if user, ok := ctxGetUserID(r.Context()); ok {
			event = event.Str("user", user)
		}
		event.Msg("developer created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, developer)
	})
}

// getDeveloper returns the developer joined with its info. The info
// columns are null when the developer has none.
// @Router /developers/{id} [get]
func (h developerHandler) getDeveloper() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.developerExists(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		developer, err := h.developerRepo.FindWithInfo(r.Context(), s.developerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find developer", "developer", err))
			return
		}
		if developer == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(msgDeveloperNotFound))
			return
		}

		h.responder.WriteJSON(w, developer)
	})
}

// updateDeveloper applies a partial update of name and email.
// @Router /developers/{id} [patch]
func (h developerHandler) updateDeveloper() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.developerExists(),
		h.checks.decodeChanges(database.DeveloperColumns),
		h.checks.developerEmailUnique(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		developer, err := h.developerRepo.Update(r.Context(), s.developerID, s.changes)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update developer", "developer", err))
			return
		}
		if developer == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(msgDeveloperNotFound))
			return
		}

		h.responder.WriteJSON(w, developer)
	})
}

// deleteDeveloper removes a developer along with its info and projects.
// @Router /developers/{id} [delete]
func (h developerHandler) deleteDeveloper() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.developerExists(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		if err := h.developerRepo.Delete(r.Context(), s.developerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete developer", "developer", err))
			return
		}

		h.responder.WriteNoContent(w)
	})
}

// createDeveloperInfo attaches the single info record of a developer.
// @Router /developers/{id}/infos [post]
func (h developerHandler) createDeveloperInfo() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.developerExists(),
		h.checks.osIsValid(),
		h.checks.developerInfoAbsent(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		info := s.info
		if err := h.developerInfos.Add(r.Context(), &info); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create developer info", "developer info", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, info)
	})
}
