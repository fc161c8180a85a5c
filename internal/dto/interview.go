package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/datatypes"

	"interviewprep/backend/internal/models"
)

var (
	interviewTypes   = []string{models.TypePhone, models.TypeBehavioural, models.TypeCoding, models.TypeDesign}
	interviewSources = []string{models.SourceGmail, models.SourceGcal}
)

// enumOf rejects any value outside allowed. Unlike validation.In it
// treats the empty string as invalid rather than skipping it; a nil
// pointer still means "not provided" and passes.
func enumOf(allowed ...string) validation.Rule {
	return validation.By(func(value interface{}) error {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		default:
			return errors.New("must be a string")
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	})
}

// InterviewCreate is the POST /interviews request body.
type InterviewCreate struct {
	UserID   uint           `json:"user_id"`
	Company  *string        `json:"company"`
	Role     *string        `json:"role"`
	Type     *string        `json:"type"`
	Source   *string        `json:"source"`
	StartsAt *Timestamp     `json:"starts_at"`
	Details  map[string]any `json:"details"`
}

func (i InterviewCreate) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.Company, validation.Length(1, 100)),
		validation.Field(&i.Role, validation.Length(1, 100)),
		validation.Field(&i.Type, enumOf(interviewTypes...)),
		validation.Field(&i.Source, enumOf(interviewSources...)),
	)
}

func (i InterviewCreate) Model() *models.Interview {
	iv := &models.Interview{
		UserID:  i.UserID,
		Company: i.Company,
		Role:    i.Role,
		Type:    i.Type,
		Source:  i.Source,
	}
	if i.StartsAt != nil {
		t := i.StartsAt.Time
		iv.StartsAt = &t
	}
	if i.Details != nil {
		iv.Details = datatypes.JSONMap(i.Details)
	}
	return iv
}

// InterviewUpdate is the PATCH /interviews/{id} request body. Every
// field is tri-state: absent, explicit null, or a new value.
type InterviewUpdate struct {
	Company  Optional[string]         `json:"company"`
	Role     Optional[string]         `json:"role"`
	Type     Optional[string]         `json:"type"`
	Source   Optional[string]         `json:"source"`
	StartsAt Optional[Timestamp]      `json:"starts_at"`
	Details  Optional[map[string]any] `json:"details"`
}

func (i InterviewUpdate) Validate() error {
	errs := validation.Errors{}
	if i.Company.Set && i.Company.Valid {
		errs["company"] = validation.Validate(i.Company.Value, validation.Length(1, 100))
	}
	if i.Role.Set && i.Role.Valid {
		errs["role"] = validation.Validate(i.Role.Value, validation.Length(1, 100))
	}
	if i.Type.Set && i.Type.Valid {
		errs["type"] = validation.Validate(i.Type.Value, enumOf(interviewTypes...))
	}
	if i.Source.Set && i.Source.Valid {
		errs["source"] = validation.Validate(i.Source.Value, enumOf(interviewSources...))
	}
	return errs.Filter()
}

func (i InterviewUpdate) Changes() map[string]any {
	changes := map[string]any{}
	setString := func(col string, o Optional[string]) {
		if !o.Set {
			return
		}
		if o.Valid {
			changes[col] = o.Value
		} else {
			changes[col] = nil
		}
	}
	setString("company", i.Company)
	setString("role", i.Role)
	setString("type", i.Type)
	setString("source", i.Source)
	if i.StartsAt.Set {
		if i.StartsAt.Valid {
			changes["starts_at"] = i.StartsAt.Value.Time
		} else {
			changes["starts_at"] = nil
		}
	}
	if i.Details.Set {
		if i.Details.Valid {
			changes["details"] = datatypes.JSONMap(i.Details.Value)
		} else {
			changes["details"] = nil
		}
	}
	return changes
}

// InterviewRead is the wire representation of an interview.
type InterviewRead struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"user_id"`
	Company   *string        `json:"company"`
	Role      *string        `json:"role"`
	Type      *string        `json:"type"`
	Source    *string        `json:"source"`
	StartsAt  *time.Time     `json:"starts_at"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewInterviewRead(iv *models.Interview) InterviewRead {
	read := InterviewRead{
		ID:        iv.ID,
		UserID:    iv.UserID,
		Company:   iv.Company,
		Role:      iv.Role,
		Type:      iv.Type,
		Source:    iv.Source,
		StartsAt:  iv.StartsAt,
		CreatedAt: iv.CreatedAt,
	}
	if iv.Details != nil {
		read.Details = map[string]any(iv.Details)
	}
	return read
}

func NewInterviewList(interviews []models.Interview) []InterviewRead {
	out := make([]InterviewRead, 0, len(interviews))
	for i := range interviews {
		out = append(out, NewInterviewRead(&interviews[i]))
	}
	return out
}
