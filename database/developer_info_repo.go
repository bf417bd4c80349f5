package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/devtrack/backend/models"
)

type DeveloperInfoRepo struct {
	runner
}

func NewDeveloperInfoRepo(db *gorm.DB) *DeveloperInfoRepo {
	return &DeveloperInfoRepo{runner{db}}
}

// FindByDeveloperID returns the info row of a developer, or nil when there is none
func (r *DeveloperInfoRepo) FindByDeveloperID(ctx context.Context, developerID int64) (*models.DeveloperInfo, error) {
	query := sq.Select("*").
		From("developer_infos").
		Where(sq.Eq{"developer_id": developerID}).
		Limit(1)

	var info models.DeveloperInfo
	n, err := r.scan(ctx, query, &info)
	if err != nil || n == 0 {
		return nil, err
	}
	return &info, nil
}

// Add inserts a new info row and fills in the generated id
func (r *DeveloperInfoRepo) Add(ctx context.Context, info *models.DeveloperInfo) error {
	query := sq.Insert("developer_infos").
		Columns("developer_since", "preferred_os", "developer_id").
		Values(info.DeveloperSince, string(info.PreferredOS), info.DeveloperID).
		Suffix("RETURNING *")

	_, err := r.scan(ctx, query, info)
	return err
}
