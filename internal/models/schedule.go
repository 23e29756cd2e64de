package models

import "github.com/julianstephens/hearth/internal/constants"

// Entry is one occupied slot of the generated schedule.
type Entry struct {
	Date     string `json:"date" yaml:"date"` // YYYY-MM-DD
	Weekday  string `json:"weekday" yaml:"weekday"`
	Start    string `json:"start" yaml:"start"` // HH:MM
	End      string `json:"end" yaml:"end"`     // HH:MM
	TaskID   string `json:"task_id" yaml:"task_id"`
	TaskName string `json:"task_name" yaml:"task_name"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Column   string `json:"column" yaml:"column"` // person id or constants.ColumnCommon
	Shared   bool   `json:"shared,omitempty" yaml:"shared,omitempty"`
}

type DaySchedule struct {
	Date    string  `json:"date" yaml:"date"`
	Weekday string  `json:"weekday" yaml:"weekday"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

type Week struct {
	Year   int           `json:"year" yaml:"year"` // ISO year
	Number int           `json:"number" yaml:"number"`
	Days   []DaySchedule `json:"days" yaml:"days"`
}

// Schedule is the week-grouped output of a generation run.
type Schedule struct {
	Period    constants.PeriodKind `json:"period" yaml:"period"`
	StartDate string               `json:"start_date" yaml:"start_date"`
	EndDate   string               `json:"end_date" yaml:"end_date"`
	Weeks     []Week               `json:"weeks" yaml:"weeks"`
}

// Entries flattens the schedule in period order.
func (s Schedule) Entries() []Entry {
	var out []Entry
	for _, w := range s.Weeks {
		for _, d := range w.Days {
			out = append(out, d.Entries...)
		}
	}
	return out
}

// Placement records where a task landed.
type Placement struct {
	TaskID string `json:"task_id" yaml:"task_id"`
	Date   string `json:"date" yaml:"date"`
	Start  string `json:"start" yaml:"start"`
	End    string `json:"end" yaml:"end"`
	Column string `json:"column" yaml:"column"`
}

// Failure records a task that could not be placed.
type Failure struct {
	TaskID   string `json:"task_id" yaml:"task_id"`
	TaskName string `json:"task_name" yaml:"task_name"`
	Reason   string `json:"reason" yaml:"reason"`
}

// PlacementStats summarizes one generation run.
type PlacementStats struct {
	TotalTasks  int         `json:"total_tasks" yaml:"total_tasks"`
	Placed      int         `json:"placed" yaml:"placed"`
	Failed      int         `json:"failed" yaml:"failed"`
	SuccessRate int         `json:"success_rate" yaml:"success_rate"` // percent
	Occurrences int         `json:"occurrences" yaml:"occurrences"`
	Placements  []Placement `json:"placements" yaml:"placements"`
	Failures    []Failure   `json:"failures" yaml:"failures"`
}
