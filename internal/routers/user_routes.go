package routers

import (
	"github.com/go-chi/chi/v5"

	"interviewprep/backend/internal/handlers"
)

func UserRoutes(r chi.Router, userHandler *handlers.UserHandler) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUserHandler)
		r.Get("/", userHandler.ListUsersHandler)
		r.Get("/{id}", userHandler.GetUserHandler)
		r.Patch("/{id}", userHandler.UpdateUserHandler)
		r.Delete("/{id}", userHandler.DeleteUserHandler)
	})
}
