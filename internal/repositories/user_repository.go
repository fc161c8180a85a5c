package repositories

import (
	"errors"

	"gorm.io/gorm"

	"interviewprep/backend/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already in use")
	ErrGoogleSubTaken = errors.New("google_sub already in use")
)

type UserRepository struct {
	DB *gorm.DB
}

// CreateUser persists a new user. The pre-insert lookups exist to give
// duplicates a friendly error; the unique indexes stay the backstop
// when two creates race past the check.
func (r *UserRepository) CreateUser(user *models.User) error {
	var count int64
	if err := r.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	if user.GoogleSub != nil {
		if err := r.DB.Model(&models.User{}).Where("google_sub = ?", *user.GoogleSub).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrGoogleSubTaken
		}
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns users newest-id-first. A non-nil email narrows the
// result to an exact, case-sensitive match.
func (r *UserRepository) ListUsers(email *string, limit, offset int) ([]models.User, error) {
	users := []models.User{}
	q := r.DB.Order("id DESC").Limit(limit).Offset(offset)
	if email != nil {
		q = q.Where("email = ?", *email)
	}
	err := q.Find(&users).Error
	return users, err
}

// UpdateUser applies the given column changes to an existing row. An
// email change is checked against every other row first so holding on
// to your own email is never a conflict.
func (r *UserRepository) UpdateUser(id uint, changes map[string]any) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var count int64
	if email, ok := changes["email"]; ok {
		if err := r.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
	}
	if sub, ok := changes["google_sub"]; ok && sub != nil {
		if err := r.DB.Model(&models.User{}).Where("google_sub = ? AND id <> ?", sub, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrGoogleSubTaken
		}
	}

	if len(changes) > 0 {
		if err := r.DB.Model(&user).Updates(changes).Error; err != nil {
			return nil, err
		}
		// re-read so the caller sees exactly what was stored
		if err := r.DB.First(&user, id).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (r *UserRepository) DeleteUser(id uint) error {
	result := r.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
