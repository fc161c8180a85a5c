package models

import (
	"time"

	"gorm.io/datatypes"
)

// Interview types and sources accepted at the API boundary.
const (
	TypePhone       = "phone"
	TypeBehavioural = "behavioural"
	TypeCoding      = "coding"
	TypeDesign      = "design"

	SourceGmail = "gmail"
	SourceGcal  = "gcal"
)

// Interview is a single scheduled or detected interview for a user.
// Details is stored opaquely; the service never inspects it.
type Interview struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"not null;index" json:"user_id"`
	Company   *string           `gorm:"size:100" json:"company"`
	Role      *string           `gorm:"size:100" json:"role"`
	Type      *string           `gorm:"size:20" json:"type"`
	Source    *string           `gorm:"size:20" json:"source"`
	StartsAt  *time.Time        `json:"starts_at"`
	Details   datatypes.JSONMap `json:"details"`
	CreatedAt time.Time         `json:"created_at"`
}
