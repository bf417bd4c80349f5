package models

import (
	"slices"
	"time"
)

// SupportedTechnologies is the seeded content of the technologies table.
var SupportedTechnologies = []string{
	"JavaScript",
	"Python",
	"React",
	"Express.js",
	"HTML",
	"CSS",
	"Django",
	"PostgreSQL",
	"MongoDB",
}

func IsSupportedTechnology(name string) bool {
	return slices.Contains(SupportedTechnologies, name)
}

// Technology is reference data; rows are created by migrations only.
type Technology struct {
	ID   int64  `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Name string `json:"name" db:"name" gorm:"column:name;type:varchar(30);not null;unique"`
}

func (Technology) TableName() string {
	return "technologies"
}

// ProjectTechnology links one project to one technology
type ProjectTechnology struct {
	ID           int64     `json:"id" db:"id" gorm:"column:id;primaryKey"`
	AddedIn      time.Time `json:"addedIn" db:"added_in" gorm:"column:added_in;not null"`
	ProjectID    int64     `json:"projectId" db:"project_id" gorm:"column:project_id;not null;uniqueIndex:idx_project_technology"`
	TechnologyID int64     `json:"technologyId" db:"technology_id" gorm:"column:technology_id;not null;uniqueIndex:idx_project_technology"`
}

func (ProjectTechnology) TableName() string {
	return "projects_technologies"
}
