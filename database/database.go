package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db                    *gorm.DB
	developerRepo         *DeveloperRepo
	developerInfoRepo     *DeveloperInfoRepo
	projectRepo           *ProjectRepo
	technologyRepo        *TechnologyRepo
	projectTechnologyRepo *ProjectTechnologyRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		developerRepo:         NewDeveloperRepo(db),
		developerInfoRepo:     NewDeveloperInfoRepo(db),
		projectRepo:           NewProjectRepo(db),
		technologyRepo:        NewTechnologyRepo(db),
		projectTechnologyRepo: NewProjectTechnologyRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) DeveloperRepo() *DeveloperRepo {
	return d.developerRepo
}

func (d Database) DeveloperInfoRepo() *DeveloperInfoRepo {
	return d.developerInfoRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) ProjectTechnologyRepo() *ProjectTechnologyRepo {
	return d.projectTechnologyRepo
}

// Ping checks the primary connection.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// runner executes squirrel-built statements through gorm. Statements use
// '?' placeholders; gorm rebinds them for the dialect.
type runner struct {
	db *gorm.DB
}

// primary pins reads to the write connection so they observe a preceding write.
func (r runner) primary() runner {
	return runner{r.db.Clauses(dbresolver.Write)}
}

func (r runner) scan(ctx context.Context, q sq.Sqlizer, dest any) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	result := r.db.WithContext(ctx).Raw(query, args...).Scan(dest)
	return result.RowsAffected, result.Error
}

func (r runner) exec(ctx context.Context, q sq.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build statement: %w", err)
	}
	result := r.db.WithContext(ctx).Exec(query, args...)
	return result.RowsAffected, result.Error
}
