package models

// Person is a member of the household. Each person gets their own column in every day.
type Person struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	DaysOff     []string `json:"days_off,omitempty" yaml:"days_off,omitempty"` // canonical weekday names
	Constraints string   `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	DeletedAt   *string  `json:"deleted_at,omitempty" yaml:"-"` // RFC3339 timestamp
}

// IsOff reports whether weekday is one of the person's days off.
func (p Person) IsOff(weekday string) bool {
	for _, d := range p.DaysOff {
		if d == weekday {
			return true
		}
	}
	return false
}
