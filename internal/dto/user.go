package dto

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"interviewprep/backend/internal/models"
)

// UserCreate is the POST /users request body.
type UserCreate struct {
	Email     string  `json:"email"`
	GoogleSub *string `json:"google_sub"`
}

func (u UserCreate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, validation.Length(1, 255), is.EmailFormat),
		validation.Field(&u.GoogleSub, validation.Length(1, 128)),
	)
}

func (u UserCreate) Model() *models.User {
	return &models.User{Email: u.Email, GoogleSub: u.GoogleSub}
}

// UserUpdate is the PATCH /users/{id} request body. Absent fields leave
// the row untouched; google_sub may be explicitly nulled, email may not.
type UserUpdate struct {
	Email     Optional[string] `json:"email"`
	GoogleSub Optional[string] `json:"google_sub"`
}

func (u UserUpdate) Validate() error {
	errs := validation.Errors{}
	if u.Email.Set {
		if !u.Email.Valid {
			errs["email"] = errors.New("cannot be null")
		} else if err := validation.Validate(u.Email.Value,
			validation.Required, validation.Length(1, 255), is.EmailFormat); err != nil {
			errs["email"] = err
		}
	}
	if u.GoogleSub.Set && u.GoogleSub.Valid {
		if err := validation.Validate(u.GoogleSub.Value, validation.Length(1, 128)); err != nil {
			errs["google_sub"] = err
		}
	}
	return errs.Filter()
}

// Changes returns the column assignments encoded by the request body.
func (u UserUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if u.Email.Set {
		changes["email"] = u.Email.Value
	}
	if u.GoogleSub.Set {
		if u.GoogleSub.Valid {
			changes["google_sub"] = u.GoogleSub.Value
		} else {
			changes["google_sub"] = nil
		}
	}
	return changes
}

// UserRead is the wire representation of a user.
type UserRead struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	GoogleSub *string `json:"google_sub"`
}

func NewUserRead(u *models.User) UserRead {
	return UserRead{ID: u.ID, Email: u.Email, GoogleSub: u.GoogleSub}
}

func NewUserList(users []models.User) []UserRead {
	out := make([]UserRead, 0, len(users))
	for i := range users {
		out = append(out, NewUserRead(&users[i]))
	}
	return out
}
