package models

import (
	"time"
)

// User is an account tracked by the system. Identity comes from an
// external provider, so there are no credential fields; GoogleSub holds
// the provider's subject identifier when the account was linked.
type User struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Email      string      `gorm:"uniqueIndex;size:255;not null" json:"email"`
	GoogleSub  *string     `gorm:"uniqueIndex;size:128" json:"google_sub"`
	CreatedAt  time.Time   `json:"created_at"`
	Interviews []Interview `gorm:"foreignKey:UserID" json:"-"`
}
