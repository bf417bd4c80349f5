package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/devtrack/backend/models"
)

type DeveloperRepo struct {
	runner
}

func NewDeveloperRepo(db *gorm.DB) *DeveloperRepo {
	return &DeveloperRepo{runner{db}}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *DeveloperRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all developers ordered by id
func (r *DeveloperRepo) FindAll(ctx context.Context) ([]models.Developer, error) {
	developers := []models.Developer{}
	_, err := r.scan(ctx, sq.Select("*").From("developers").OrderBy("id"), &developers)
	return developers, err
}

// FindByID returns the developer with the given id, or nil when there is none
func (r *DeveloperRepo) FindByID(ctx context.Context, id int64) (*models.Developer, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// FindByEmail returns the developer using the given email, or nil when there is none
func (r *DeveloperRepo) FindByEmail(ctx context.Context, email string) (*models.Developer, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *DeveloperRepo) findOne(ctx context.Context, where sq.Eq) (*models.Developer, error) {
	var developer models.Developer
	n, err := r.scan(ctx, sq.Select("*").From("developers").Where(where).Limit(1), &developer)
	if err != nil || n == 0 {
		return nil, err
	}
	return &developer, nil
}

// FindWithInfo returns the developer left-joined with its info, or nil when
// the developer does not exist
func (r *DeveloperRepo) FindWithInfo(ctx context.Context, id int64) (*models.DeveloperWithInfo, error) {
	query := sq.Select(
		"d.id AS developer_id",
		"d.name AS developer_name",
		"d.email AS developer_email",
		"di.developer_since AS developer_info_developer_since",
		"di.preferred_os AS developer_info_preferred_os",
	).
		From("developers d").
		LeftJoin("developer_infos di ON di.developer_id = d.id").
		Where(sq.Eq{"d.id": id})

	var developer models.DeveloperWithInfo
	n, err := r.scan(ctx, query, &developer)
	if err != nil || n == 0 {
		return nil, err
	}
	return &developer, nil
}

// Add inserts a new developer and fills in the generated id
func (r *DeveloperRepo) Add(ctx context.Context, developer *models.Developer) error {
	query := sq.Insert("developers").
		Columns("name", "email").
		Values(developer.Name, developer.Email).
		Suffix("RETURNING *")

	_, err := r.scan(ctx, query, developer)
	return err
}

// Update applies a partial update and returns the full row, or nil when the
// developer no longer exists
func (r *DeveloperRepo) Update(ctx context.Context, id int64, changes Changes) (*models.Developer, error) {
	var developer models.Developer
	n, err := r.scan(ctx, changes.updateByID(id), &developer)
	if err != nil || n == 0 {
		return nil, err
	}
	return &developer, nil
}

// Delete removes a developer; info rows and projects cascade
func (r *DeveloperRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.exec(ctx, sq.Delete("developers").Where(sq.Eq{"id": id}))
	return err
}
