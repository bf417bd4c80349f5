package database

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/devtrack/backend/models"
)

type TechnologyRepo struct {
	runner
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{runner{db}}
}

// FindAll returns all technologies ordered by id
func (r *TechnologyRepo) FindAll(ctx context.Context) ([]models.Technology, error) {
	technologies := []models.Technology{}
	_, err := r.scan(ctx, sq.Select("*").From("technologies").OrderBy("id"), &technologies)
	return technologies, err
}

// FindByName returns the technology with the given name, or nil when there is none
func (r *TechnologyRepo) FindByName(ctx context.Context, name string) (*models.Technology, error) {
	var technology models.Technology
	n, err := r.scan(ctx, sq.Select("*").From("technologies").Where(sq.Eq{"name": name}).Limit(1), &technology)
	if err != nil || n == 0 {
		return nil, err
	}
	return &technology, nil
}

type ProjectTechnologyRepo struct {
	runner
	now func() time.Time
}

func NewProjectTechnologyRepo(db *gorm.DB) *ProjectTechnologyRepo {
	return &ProjectTechnologyRepo{runner: runner{db}, now: time.Now}
}

// Find returns the association of a project and a technology, or nil when there is none
func (r *ProjectTechnologyRepo) Find(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error) {
	query := sq.Select("*").
		From("projects_technologies").
		Where(sq.Eq{"project_id": projectID, "technology_id": technologyID}).
		Limit(1)

	var association models.ProjectTechnology
	n, err := r.scan(ctx, query, &association)
	if err != nil || n == 0 {
		return nil, err
	}
	return &association, nil
}

// Add links a technology to a project, stamping addedIn with the current time
func (r *ProjectTechnologyRepo) Add(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error) {
	query := sq.Insert("projects_technologies").
		Columns("added_in", "project_id", "technology_id").
		Values(r.now().UTC(), projectID, technologyID).
		Suffix("RETURNING *")

	var association models.ProjectTechnology
	if _, err := r.scan(ctx, query, &association); err != nil {
		return nil, err
	}
	return &association, nil
}

// Delete unlinks a technology from a project
func (r *ProjectTechnologyRepo) Delete(ctx context.Context, projectID, technologyID int64) error {
	query := sq.Delete("projects_technologies").
		Where(sq.Eq{"project_id": projectID, "technology_id": technologyID})

	_, err := r.exec(ctx, query)
	return err
}
