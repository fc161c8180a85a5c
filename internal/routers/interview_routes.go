package routers

import (
	"github.com/go-chi/chi/v5"

	"interviewprep/backend/internal/handlers"
)

func InterviewRoutes(r chi.Router, interviewHandler *handlers.InterviewHandler) {
	r.Route("/interviews", func(r chi.Router) {
		r.Post("/", interviewHandler.CreateInterviewHandler)
		r.Get("/", interviewHandler.ListInterviewsHandler)
		r.Get("/{id}", interviewHandler.GetInterviewHandler)
		r.Patch("/{id}", interviewHandler.UpdateInterviewHandler)
		r.Delete("/{id}", interviewHandler.DeleteInterviewHandler)
	})
}
