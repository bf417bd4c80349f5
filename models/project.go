package models

// Project represents a project owned by a developer
type Project struct {
	ID            int64  `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Name          string `json:"name" db:"name" gorm:"column:name;type:varchar(50);not null"`
	Description   string `json:"description" db:"description" gorm:"column:description;type:text"`
	EstimatedTime string `json:"estimatedTime" db:"estimated_time" gorm:"column:estimated_time;type:varchar(20);not null"`
	Repository    string `json:"repository" db:"repository" gorm:"column:repository;type:varchar(120);not null"`
	StartDate     Date   `json:"startDate" db:"start_date" gorm:"column:start_date;not null"`
	EndDate       *Date  `json:"endDate" db:"end_date" gorm:"column:end_date"`
	DeveloperID   int64  `json:"developerId" db:"developer_id" gorm:"column:developer_id;not null"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectWithTechnology is one row of a project left-joined with its
// technologies. The technology columns are null when the project has none.
type ProjectWithTechnology struct {
	ProjectID            int64   `json:"projectId" gorm:"column:project_id"`
	ProjectName          string  `json:"projectName" gorm:"column:project_name"`
	ProjectDescription   string  `json:"projectDescription" gorm:"column:project_description"`
	ProjectEstimatedTime string  `json:"projectEstimatedTime" gorm:"column:project_estimated_time"`
	ProjectRepository    string  `json:"projectRepository" gorm:"column:project_repository"`
	ProjectStartDate     Date    `json:"projectStartDate" gorm:"column:project_start_date"`
	ProjectEndDate       *Date   `json:"projectEndDate" gorm:"column:project_end_date"`
	ProjectDeveloperID   int64   `json:"projectDeveloperId" gorm:"column:project_developer_id"`
	TechnologyID         *int64  `json:"technologyId" gorm:"column:technology_id"`
	TechnologyName       *string `json:"technologyName" gorm:"column:technology_name"`
}
