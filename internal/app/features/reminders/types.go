// internal/app/features/reminders/types.go
package reminders

import (
	"strings"

	"github.com/dalemusser/dailyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/dailyhub/internal/domain/models"
)

type createRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	Datetime       string   `json:"datetime" validate:"required,isodatetime"`
	Priority       string   `json:"priority" validate:"required,oneof=Low Medium High"`
	Recurrence     *string  `json:"recurrence" validate:"omitnil,oneof=daily weekly monthly custom"`
	RecurrenceDays []string `json:"recurrence_days" validate:"omitempty,dive,weekday"`
}

func (r *createRequest) Normalize() {
	r.Title = htmlsanitize.PlainText(r.Title)
	r.Description = htmlsanitize.PlainText(r.Description)
	r.Datetime = strings.TrimSpace(r.Datetime)
}

func (r createRequest) reminder(userID string) models.Reminder {
	return models.Reminder{
		UserID:         userID,
		Title:          r.Title,
		Description:    r.Description,
		Datetime:       r.Datetime,
		Priority:       r.Priority,
		Recurrence:     r.Recurrence,
		RecurrenceDays: r.RecurrenceDays,
	}
}

// updateRequest fields left out of the body (or sent as null) are not
// changed.
type updateRequest struct {
	Title          *string  `json:"title" validate:"omitnil,min=1"`
	Description    *string  `json:"description"`
	Datetime       *string  `json:"datetime" validate:"omitnil,isodatetime"`
	Priority       *string  `json:"priority" validate:"omitnil,oneof=Low Medium High"`
	Recurrence     *string  `json:"recurrence" validate:"omitnil,oneof=daily weekly monthly custom"`
	RecurrenceDays []string `json:"recurrence_days" validate:"omitempty,dive,weekday"`
	Completed      *bool    `json:"completed"`
}

func (r *updateRequest) Normalize() {
	r.Title = htmlsanitize.PlainTextPtr(r.Title)
	r.Description = htmlsanitize.PlainTextPtr(r.Description)
	if r.Datetime != nil {
		d := strings.TrimSpace(*r.Datetime)
		r.Datetime = &d
	}
}

func (r updateRequest) patch() models.ReminderPatch {
	return models.ReminderPatch{
		Title:          r.Title,
		Description:    r.Description,
		Datetime:       r.Datetime,
		Priority:       r.Priority,
		Recurrence:     r.Recurrence,
		RecurrenceDays: r.RecurrenceDays,
		Completed:      r.Completed,
	}
}

type createResponse struct {
	Message  string          `json:"message"`
	Reminder models.Reminder `json:"reminder"`
}

const (
	msgCreated = "Reminder created successfully"
	msgUpdated = "Reminder updated successfully"
	msgDeleted = "Reminder deleted successfully"
)
