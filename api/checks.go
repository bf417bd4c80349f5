package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/devtrack/backend/database"
	"github.com/devtrack/backend/errs"
	"github.com/devtrack/backend/models"
)

const (
	msgEmailExists         = "Email already exists."
	msgDeveloperNotFound   = "Developer not found."
	msgInfoExists          = "Developer infos already exists."
	msgInvalidOS           = "Invalid OS option."
	msgProjectNotFound     = "Project not found."
	msgTechNotSupported    = "Technology not supported."
	msgTechAlreadyAttached = "This technology is already associated with the project"
	msgTechNotAttached     = "Technology not related to the project."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		return errs.NewInvalidFieldError(first.Field(), fmt.Sprintf("failed on the '%s' rule", first.Tag()))
	}
	return errs.NewBadRequestError(err.Error())
}

func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewBadRequestError("invalid " + param)
	}
	return id, nil
}

// checks builds the validation steps over the repositories they read.
type checks struct {
	developers          DeveloperRepository
	infos               DeveloperInfoRepository
	projects            ProjectRepository
	technologies        TechnologyRepository
	projectTechnologies ProjectTechnologyRepository
}

func newChecks(repos Repositories) checks {
	return checks{
		developers:          repos.Developers,
		infos:               repos.DeveloperInfos,
		projects:            repos.Projects,
		technologies:        repos.Technologies,
		projectTechnologies: repos.ProjectTechnologies,
	}
}

// decodeDeveloper binds and validates a create-developer payload.
func (c checks) decodeDeveloper() check {
	return func(r *http.Request, s state) (state, error) {
		var req createDeveloperRequest
		if err := decodeStrict(s, "developer", &req); err != nil {
			return s, err
		}
		if err := validate.Struct(req); err != nil {
			return s, validationError(err)
		}
		s.developer = models.Developer{Name: req.Name, Email: req.Email}
		return s, nil
	}
}

// decodeProject binds and validates a create-project payload. A missing
// endDate stays null.
func (c checks) decodeProject() check {
	return func(r *http.Request, s state) (state, error) {
		var req createProjectRequest
		if err := decodeStrict(s, "project", &req); err != nil {
			return s, err
		}
		if err := validate.Struct(req); err != nil {
			return s, validationError(err)
		}
		s.project = models.Project{
			Name:          req.Name,
			Description:   req.Description,
			EstimatedTime: req.EstimatedTime,
			Repository:    req.Repository,
			StartDate:     *req.StartDate,
			EndDate:       req.EndDate,
			DeveloperID:   req.DeveloperID,
		}
		return s, nil
	}
}

// decodeChanges binds a partial update restricted to the allowlisted keys.
func (c checks) decodeChanges(allowed database.Allowlist) check {
	return func(r *http.Request, s state) (state, error) {
		changes, err := allowed.Parse(s.fields)
		if err != nil {
			return s, err
		}
		s.changes = changes
		return s, nil
	}
}

// developerEmailUnique rejects an email another developer already uses.
// Bodies without an email pass.
func (c checks) developerEmailUnique() check {
	return func(r *http.Request, s state) (state, error) {
		email, ok, err := field[string](s, "email")
		if err != nil || !ok {
			return s, err
		}

		existing, err := c.developers.FindByEmail(r.Context(), email)
		if err != nil {
			return s, wrapDatabaseError("find developer", "developer", err)
		}
		if existing != nil {
			return s, errs.NewConflictError(msgEmailExists)
		}
		return s, nil
	}
}

// developerExists binds the developer named by the {id} path segment.
func (c checks) developerExists() check {
	return func(r *http.Request, s state) (state, error) {
		id, err := pathID(r, "id")
		if err != nil {
			return s, err
		}
		return c.bindDeveloper(r, s, id)
	}
}

// developerExistsInBody binds the developer named by the body's developerId.
// Bodies without a developerId pass.
func (c checks) developerExistsInBody() check {
	return func(r *http.Request, s state) (state, error) {
		id, ok, err := field[int64](s, "developerId")
		if err != nil || !ok {
			return s, err
		}
		return c.bindDeveloper(r, s, id)
	}
}

func (c checks) bindDeveloper(r *http.Request, s state, id int64) (state, error) {
	developer, err := c.developers.FindByID(r.Context(), id)
	if err != nil {
		return s, wrapDatabaseError("find developer", "developer", err)
	}
	if developer == nil {
		return s, errs.NewNotFoundError(msgDeveloperNotFound)
	}
	s.developerID = id
	return s, nil
}

// developerInfoAbsent rejects a second info record for the bound developer.
func (c checks) developerInfoAbsent() check {
	return func(r *http.Request, s state) (state, error) {
		info, err := c.infos.FindByDeveloperID(r.Context(), s.developerID)
		if err != nil {
			return s, wrapDatabaseError("find developer info", "developer info", err)
		}
		if info != nil {
			return s, errs.NewConflictError(msgInfoExists)
		}
		return s, nil
	}
}

// osIsValid checks preferredOS against the supported set and binds the info
// payload for the bound developer.
func (c checks) osIsValid() check {
	return func(r *http.Request, s state) (state, error) {
		preferredOS, _, err := field[string](s, "preferredOS")
		if err != nil || !models.OperatingSystem(preferredOS).Valid() {
			return s, errs.NewInvalidOptionError(msgInvalidOS, models.OperatingSystems)
		}

		since, _, err := field[*models.Date](s, "developerSince")
		if err != nil {
			return s, err
		}

		s.info = models.DeveloperInfo{
			DeveloperSince: since,
			PreferredOS:    models.OperatingSystem(preferredOS),
			DeveloperID:    s.developerID,
		}
		return s, nil
	}
}

// projectExists binds the project named by the {id} path segment.
func (c checks) projectExists() check {
	return func(r *http.Request, s state) (state, error) {
		id, err := pathID(r, "id")
		if err != nil {
			return s, err
		}

		project, err := c.projects.FindByID(r.Context(), id)
		if err != nil {
			return s, wrapDatabaseError("find project", "project", err)
		}
		if project == nil {
			return s, errs.NewNotFoundError(msgProjectNotFound)
		}
		s.projectID = id
		return s, nil
	}
}

// technologyFromBody reads the technology name of an attach request.
func technologyFromBody(r *http.Request, s state) string {
	name, _, _ := field[string](s, "name")
	return name
}

// technologyFromPath reads the technology name of a detach request.
func technologyFromPath(r *http.Request, _ state) string {
	return chi.URLParam(r, "name")
}

// technologyNameValid binds the technology with the given name, which must be
// one of the supported technologies.
func (c checks) technologyNameValid(name func(*http.Request, state) string) check {
	return func(r *http.Request, s state) (state, error) {
		technology, err := c.technologies.FindByName(r.Context(), name(r, s))
		if err != nil {
			return s, wrapDatabaseError("find technology", "technology", err)
		}
		if technology == nil {
			return s, errs.NewInvalidOptionError(msgTechNotSupported, models.SupportedTechnologies)
		}
		s.technology = *technology
		return s, nil
	}
}

// technologyNotOnProject rejects attaching a technology the bound project already has.
func (c checks) technologyNotOnProject() check {
	return func(r *http.Request, s state) (state, error) {
		association, err := c.projectTechnologies.Find(r.Context(), s.projectID, s.technology.ID)
		if err != nil {
			return s, wrapDatabaseError("find project technology", "project technology", err)
		}
		if association != nil {
			return s, errs.NewConflictError(msgTechAlreadyAttached)
		}
		return s, nil
	}
}

// technologyOnProject rejects detaching a technology the bound project does not have.
func (c checks) technologyOnProject() check {
	return func(r *http.Request, s state) (state, error) {
		association, err := c.projectTechnologies.Find(r.Context(), s.projectID, s.technology.ID)
		if err != nil {
			return s, wrapDatabaseError("find project technology", "project technology", err)
		}
		if association == nil {
			return s, errs.NewBadRequestError(msgTechNotAttached)
		}
		return s, nil
	}
}
