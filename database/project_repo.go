package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/devtrack/backend/models"
)

type ProjectRepo struct {
	runner
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{runner{db}}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all projects ordered by id
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	_, err := r.scan(ctx, sq.Select("*").From("projects").OrderBy("id"), &projects)
	return projects, err
}

// FindByID returns the project with the given id, or nil when there is none
func (r *ProjectRepo) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	n, err := r.scan(ctx, sq.Select("*").From("projects").Where(sq.Eq{"id": id}).Limit(1), &project)
	if err != nil || n == 0 {
		return nil, err
	}
	return &project, nil
}

func withTechnologies() sq.SelectBuilder {
	return sq.Select(
		"p.id AS project_id",
		"p.name AS project_name",
		"p.description AS project_description",
		"p.estimated_time AS project_estimated_time",
		"p.repository AS project_repository",
		"p.start_date AS project_start_date",
		"p.end_date AS project_end_date",
		"p.developer_id AS project_developer_id",
		"pt.technology_id AS technology_id",
		"t.name AS technology_name",
	).
		From("projects p").
		LeftJoin("projects_technologies pt ON pt.project_id = p.id").
		LeftJoin("technologies t ON t.id = pt.technology_id")
}

// FindWithTechnologies returns one row per technology of the project, or a
// single row with null technology columns when it has none. The result is
// empty when the project does not exist.
func (r *ProjectRepo) FindWithTechnologies(ctx context.Context, id int64) ([]models.ProjectWithTechnology, error) {
	rows := []models.ProjectWithTechnology{}
	query := withTechnologies().
		Where(sq.Eq{"p.id": id}).
		OrderBy("pt.added_in", "pt.technology_id")

	_, err := r.scan(ctx, query, &rows)
	return rows, err
}

// FindWithTechnology returns the joined row of one project/technology pair.
// It reads from the primary so it sees an association written just before.
func (r *ProjectRepo) FindWithTechnology(ctx context.Context, projectID, technologyID int64) (*models.ProjectWithTechnology, error) {
	query := withTechnologies().
		Where(sq.Eq{"p.id": projectID, "pt.technology_id": technologyID})

	var row models.ProjectWithTechnology
	n, err := r.primary().scan(ctx, query, &row)
	if err != nil || n == 0 {
		return nil, err
	}
	return &row, nil
}

// Add inserts a new project and fills in the generated id
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	query := sq.Insert("projects").
		Columns("name", "description", "estimated_time", "repository", "start_date", "end_date", "developer_id").
		Values(
			project.Name,
			project.Description,
			project.EstimatedTime,
			project.Repository,
			project.StartDate,
			project.EndDate,
			project.DeveloperID,
		).
		Suffix("RETURNING *")

	_, err := r.scan(ctx, query, project)
	return err
}

// Update applies a partial update and returns the full row, or nil when the
// project no longer exists
func (r *ProjectRepo) Update(ctx context.Context, id int64, changes Changes) (*models.Project, error) {
	var project models.Project
	n, err := r.scan(ctx, changes.updateByID(id), &project)
	if err != nil || n == 0 {
		return nil, err
	}
	return &project, nil
}

// Delete removes a project; its technology associations cascade
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.exec(ctx, sq.Delete("projects").Where(sq.Eq{"id": id}))
	return err
}
