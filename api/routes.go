package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every endpoint. Mutating routes sit behind the auth
// middleware, which lets requests through when no secret is configured.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.getHealth())

	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)

		// Read endpoints
		r.Get("/developers", handlers.developerHandler.getAllDevelopers())
		r.Get("/developers/{id}", handlers.developerHandler.getDeveloper())
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{id}", handlers.projectHandler.getProject())
		r.Get("/technologies", handlers.technologyHandler.getAllTechnologies())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/developers", handlers.developerHandler.createDeveloper())
			r.Patch("/developers/{id}", handlers.developerHandler.updateDeveloper())
			r.Delete("/developers/{id}", handlers.developerHandler.deleteDeveloper())
			r.Post("/developers/{id}/infos", handlers.developerHandler.createDeveloperInfo())

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Patch("/projects/{id}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{id}", handlers.projectHandler.deleteProject())
			r.Post("/projects/{id}/technologies", handlers.projectHandler.addTechnology())
			r.Delete("/projects/{id}/technologies/{name}", handlers.projectHandler.removeTechnology())
		})
	})
}
