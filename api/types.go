package api

import "github.com/devtrack/backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	developerHandler  developerHandler
	projectHandler    projectHandler
	technologyHandler technologyHandler
	healthHandler     healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Message string   `json:"message" example:"Developer not found."`
	Options []string `json:"options,omitempty" example:"Windows,Linux,MacOS"`
	Field   string   `json:"field,omitempty" example:"email"`
	Details string   `json:"details,omitempty" example:"Invalid field email: failed on the 'email' rule"`
}

type createDeveloperRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Email string `json:"email" validate:"required,email,max=50"`
}

type createProjectRequest struct {
	Name          string       `json:"name" validate:"required,max=50"`
	Description   string       `json:"description"`
	EstimatedTime string       `json:"estimatedTime" validate:"required,max=20"`
	Repository    string       `json:"repository" validate:"required,max=120"`
	StartDate     *models.Date `json:"startDate" validate:"required"`
	EndDate       *models.Date `json:"endDate"`
	DeveloperID   int64        `json:"developerId" validate:"required,gt=0"`
}

// HealthResponse reports liveness and database reachability.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}
