package api

import "time"

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(repos Repositories, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		developerHandler:  newDeveloperHandler(repos),
		projectHandler:    newProjectHandler(repos),
		technologyHandler: newTechnologyHandler(repos.Technologies),
		healthHandler:     newHealthHandler(repos.Health, startupTime),
	}
}
