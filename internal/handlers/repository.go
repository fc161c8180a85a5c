package handlers

import (
	"interviewprep/backend/internal/models"
)

// UserRepository captures the persistence operations required by the
// user handlers.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	ListUsers(email *string, limit, offset int) ([]models.User, error)
	UpdateUser(id uint, changes map[string]any) (*models.User, error)
	DeleteUser(id uint) error
}

// InterviewRepository captures the persistence operations required by
// the interview handlers.
type InterviewRepository interface {
	CreateInterview(interview *models.Interview) error
	GetInterviewByID(id uint) (*models.Interview, error)
	ListInterviews(userID uint, limit, offset int) ([]models.Interview, error)
	UpdateInterview(id uint, changes map[string]any) (*models.Interview, error)
	DeleteInterview(id uint) error
}
