package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/hearth/internal/constants"
)

// GenerationConfig is the input record of one generation run.
type GenerationConfig struct {
	Period     constants.PeriodKind `json:"period" yaml:"period"`
	StartDate  string               `json:"start_date" yaml:"start_date"` // YYYY-MM-DD
	WorkStart  string               `json:"work_start" yaml:"work_start"` // HH:MM
	WorkEnd    string               `json:"work_end" yaml:"work_end"`
	LunchStart string               `json:"lunch_start" yaml:"lunch_start"`
	LunchEnd   string               `json:"lunch_end" yaml:"lunch_end"`
	SlotMin    int                  `json:"slot_min" yaml:"slot_min"`
}

// Window is the work-hours template in minutes from midnight.
type Window struct {
	WorkStart  int
	WorkEnd    int
	LunchStart int
	LunchEnd   int
	SlotMin    int
}

// Start parses StartDate.
func (c GenerationConfig) Start() (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", c.StartDate, err)
	}
	return t, nil
}

// Window parses the HH:MM fields into minute-of-day values.
func (c GenerationConfig) Window() (Window, error) {
	var w Window
	fields := []struct {
		name string
		src  string
		dst  *int
	}{
		{"work start", c.WorkStart, &w.WorkStart},
		{"work end", c.WorkEnd, &w.WorkEnd},
		{"lunch start", c.LunchStart, &w.LunchStart},
		{"lunch end", c.LunchEnd, &w.LunchEnd},
	}
	for _, f := range fields {
		m, err := ParseClock(f.src)
		if err != nil {
			return Window{}, fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = m
	}
	w.SlotMin = c.SlotMin
	return w, nil
}

// ParseClock parses HH:MM and returns the number of minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock formats minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
