package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"interviewprep/backend/internal/models"
)

var ErrInterviewNotFound = errors.New("interview not found")

type InterviewRepository struct {
	DB *gorm.DB
}

// CreateInterview persists unconditionally. user_id is not checked
// against the users table here; callers with only untrusted references
// (the event subscriber) resolve the user themselves first.
func (r *InterviewRepository) CreateInterview(interview *models.Interview) error {
	return r.DB.Create(interview).Error
}

func (r *InterviewRepository) GetInterviewByID(id uint) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.First(&interview, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// ListInterviews returns one user's interviews newest-id-first.
func (r *InterviewRepository) ListInterviews(userID uint, limit, offset int) ([]models.Interview, error) {
	interviews := []models.Interview{}
	err := r.DB.
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) UpdateInterview(id uint, changes map[string]any) (*models.Interview, error) {
	var interview models.Interview
	if err := r.DB.First(&interview, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	if len(changes) > 0 {
		if err := r.DB.Model(&interview).Updates(changes).Error; err != nil {
			return nil, err
		}
		if err := r.DB.First(&interview, id).Error; err != nil {
			return nil, err
		}
	}
	return &interview, nil
}

func (r *InterviewRepository) DeleteInterview(id uint) error {
	result := r.DB.Delete(&models.Interview{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

// HasSimilar reports whether the user already has an interview with the
// same company and start time. The event subscriber uses this to drop
// re-delivered detections.
func (r *InterviewRepository) HasSimilar(userID uint, company *string, startsAt *time.Time) (bool, error) {
	if company == nil && startsAt == nil {
		return false, nil
	}
	q := r.DB.Model(&models.Interview{}).Where("user_id = ?", userID)
	if company != nil {
		q = q.Where("company = ?", *company)
	}
	if startsAt != nil {
		q = q.Where("starts_at = ?", *startsAt)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
