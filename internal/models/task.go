package models

import (
	"github.com/julianstephens/hearth/internal/constants"
)

type Task struct {
	ID             string                   `json:"id" yaml:"id"`
	Name           string                   `json:"name" yaml:"name"`
	DurationMin    int                      `json:"duration_min" yaml:"duration_min"`
	Priority       constants.Priority       `json:"priority" yaml:"priority"`
	AssignedTo     string                   `json:"assigned_to" yaml:"assigned_to"` // person id or constants.AssignShared
	Recurrence     constants.RecurrenceType `json:"recurrence" yaml:"recurrence"`
	Color          string                   `json:"color,omitempty" yaml:"color,omitempty"`
	PreferredDays  []string                 `json:"preferred_days,omitempty" yaml:"preferred_days,omitempty"` // canonical weekday names
	TimePreference constants.TimePreference `json:"time_preference,omitempty" yaml:"time_preference,omitempty"`
	DeletedAt      *string                  `json:"deleted_at,omitempty" yaml:"-"` // RFC3339 timestamp
}

// IsShared reports whether the task needs the whole household at once.
func (t Task) IsShared() bool {
	return t.AssignedTo == constants.AssignShared
}

// ColumnKey returns the grid column the task is written into.
func (t Task) ColumnKey() string {
	if t.IsShared() {
		return constants.ColumnCommon
	}
	return t.AssignedTo
}
