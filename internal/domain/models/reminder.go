// internal/domain/models/reminder.go
package models

import "time"

// Priority values accepted for Reminder.Priority.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Recurrence values accepted for Reminder.Recurrence.
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceCustom  = "custom"
)

// Reminder is a dated item owned by exactly one user.
//
// Datetime is kept as the ISO-8601 string the client sent; lists sort on it
// lexically, which matches chronological order for a fixed offset.
// RecurrenceDays is only meaningful when Recurrence == "custom".
type Reminder struct {
	ReminderID     string     `bson:"reminder_id" json:"reminder_id"`
	UserID         string     `bson:"user_id" json:"user_id"`
	Title          string     `bson:"title" json:"title"`
	Description    string     `bson:"description" json:"description"`
	Datetime       string     `bson:"datetime" json:"datetime"`
	Priority       string     `bson:"priority" json:"priority"`
	Recurrence     *string    `bson:"recurrence" json:"recurrence"`
	RecurrenceDays []string   `bson:"recurrence_days" json:"recurrence_days"`
	Completed      bool       `bson:"completed" json:"completed"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ReminderPatch carries the fields of a partial reminder update. Nil fields
// are left untouched.
type ReminderPatch struct {
	Title          *string
	Description    *string
	Datetime       *string
	Priority       *string
	Recurrence     *string
	RecurrenceDays []string
	Completed      *bool
}
