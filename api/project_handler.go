package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devtrack/backend/database"
	"github.com/devtrack/backend/errs"
)

type projectHandler struct {
	responder           Responder
	logger              zerolog.Logger
	checks              checks
	projectRepo         ProjectRepository
	projectTechnologies ProjectTechnologyRepository
}

func newProjectHandler(repos Repositories) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:           NewResponder(logger),
		logger:              logger,
		checks:              newChecks(repos),
		projectRepo:         repos.Projects,
		projectTechnologies: repos.ProjectTechnologies,
	}
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} ErrorResponse
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// createProject creates a project owned by an existing developer
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Invalid project data"
// @Failure 404 {object} ErrorResponse "Developer not found"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.decodeProject(),
		h.checks.developerExistsInBody(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		project := s.project
		if err := h.projectRepo.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.logger.Info().
			Int64("projectId", project.ID).
			Int64("developerId", project.DeveloperID).
			Msg("project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	})
}

// getProject returns one row per technology of the project, or a single
// row with null technology columns
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} models.ProjectWithTechnology
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.projectExists(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		rows, err := h.projectRepo.FindWithTechnologies(r.Context(), s.projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if len(rows) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError(msgProjectNotFound))
			return
		}

		h.responder.WriteJSON(w, rows)
	})
}

// updateProject applies a partial update
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Invalid or unknown field"
// @Failure 404 {object} ErrorResponse "Project or developer not found"
// @Router /projects/{id} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.projectExists(),
		h.checks.decodeChanges(database.ProjectColumns),
		h.checks.developerExistsInBody(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		project, err := h.projectRepo.Update(r.Context(), s.projectID, s.changes)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(msgProjectNotFound))
			return
		}

		h.responder.WriteJSON(w, project)
	})
}

// deleteProject deletes a project and its technology associations
// @Summary Delete project
// @Tags Projects
// @Param id path int true "Project ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.projectExists(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		if err := h.projectRepo.Delete(r.Context(), s.projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteNoContent(w)
	})
}

// addTechnology associates a supported technology with a project
// @Summary Attach technology
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 201 {object} models.ProjectWithTechnology
// @Failure 400 {object} ErrorResponse "Technology not supported"
// @Failure 409 {object} ErrorResponse "Technology already associated"
// @Router /projects/{id}/technologies [post]
func (h projectHandler) addTechnology() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.projectExists(),
		h.checks.technologyNameValid(technologyFromBody),
		h.checks.technologyNotOnProject(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		if _, err := h.projectTechnologies.Add(r.Context(), s.projectID, s.technology.ID); err != nil {
			dbErr := wrapDatabaseError("add technology", "project technology", err)
			// a concurrent attach of the same pair lands on the unique index
			if errs.IsUniqueConstraintViolationError(dbErr) {
				dbErr = errs.NewConflictError(msgTechAlreadyAttached)
			}
			h.responder.WriteError(w, dbErr)
			return
		}

		row, err := h.projectRepo.FindWithTechnology(r.Context(), s.projectID, s.technology.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if row == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(msgProjectNotFound))
			return
		}

		h.logger.Info().
			Int64("projectId", s.projectID).
			Str("technology", s.technology.Name).
			Msg("technology attached")
		h.responder.WriteJSONStatus(w, http.StatusCreated, row)
	})
}

// removeTechnology removes a technology from a project
// @Summary Detach technology
// @Tags Projects
// @Param id path int true "Project ID"
// @Param name path string true "Technology name"
// @Success 204
// @Failure 400 {object} ErrorResponse "Technology not supported or not related"
// @Router /projects/{id}/technologies/{name} [delete]
func (h projectHandler) removeTechnology() http.HandlerFunc {
	return newPipeline(h.responder,
		h.checks.projectExists(),
		h.checks.technologyNameValid(technologyFromPath),
		h.checks.technologyOnProject(),
	).then(func(w http.ResponseWriter, r *http.Request, s state) {
		if err := h.projectTechnologies.Delete(r.Context(), s.projectID, s.technology.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("remove technology", "project technology", err))
			return
		}

		h.responder.WriteNoContent(w)
	})
}
