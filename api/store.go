package api

import (
	"context"

	"github.com/devtrack/backend/database"
	"github.com/devtrack/backend/models"
)

type DeveloperRepository interface {
	FindAll(ctx context.Context) ([]models.Developer, error)
	FindByID(ctx context.Context, id int64) (*models.Developer, error)
	FindByEmail(ctx context.Context, email string) (*models.Developer, error)
	FindWithInfo(ctx context.Context, id int64) (*models.DeveloperWithInfo, error)
	Add(ctx context.Context, developer *models.Developer) error
	Update(ctx context.Context, id int64, changes database.Changes) (*models.Developer, error)
	Delete(ctx context.Context, id int64) error
}

type DeveloperInfoRepository interface {
	FindByDeveloperID(ctx context.Context, developerID int64) (*models.DeveloperInfo, error)
	Add(ctx context.Context, info *models.DeveloperInfo) error
}

type ProjectRepository interface {
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id int64) (*models.Project, error)
	FindWithTechnologies(ctx context.Context, id int64) ([]models.ProjectWithTechnology, error)
	FindWithTechnology(ctx context.Context, projectID, technologyID int64) (*models.ProjectWithTechnology, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, id int64, changes database.Changes) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

type TechnologyRepository interface {
	FindAll(ctx context.Context) ([]models.Technology, error)
	FindByName(ctx context.Context, name string) (*models.Technology, error)
}

type ProjectTechnologyRepository interface {
	Find(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error)
	Add(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error)
	Delete(ctx context.Context, projectID, technologyID int64) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Repositories is everything the handlers read and write.
type Repositories struct {
	Developers          DeveloperRepository
	DeveloperInfos      DeveloperInfoRepository
	Projects            ProjectRepository
	Technologies        TechnologyRepository
	ProjectTechnologies ProjectTechnologyRepository
	Health              Pinger
}

func RepositoriesFrom(db database.Database) Repositories {
	return Repositories{
		Developers:          db.DeveloperRepo(),
		DeveloperInfos:      db.DeveloperInfoRepo(),
		Projects:            db.ProjectRepo(),
		Technologies:        db.TechnologyRepo(),
		ProjectTechnologies: db.ProjectTechnologyRepo(),
		Health:              db,
	}
}
