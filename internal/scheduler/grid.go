package scheduler

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

// Column is one lane of a day: a person's or the shared household column.
type Column struct {
	Key      string
	PersonID string // empty for the common column
	DayOff   bool
	Slots    []Slot
}

// Day holds every column of one date.
type Day struct {
	Date    time.Time
	Weekday string
	ISOYear int
	ISOWeek int
	Columns map[string]*Column
	// Order lists column keys: persons in input order, then the common column.
	Order []string
}

// Grid is the working state of a single generation run.
type Grid struct {
	Start    time.Time
	Period   constants.PeriodKind
	Days     []*Day
	Persons  []models.Person
	SlotMin  int
	Template []Slot
}

// BuildGrid expands the period into days and pre-populates every column with the
// slot template. Person columns are unavailable on that person's days off.
func BuildGrid(cfg models.GenerationConfig, persons []models.Person) (*Grid, error) {
	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}
	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	if window.SlotMin <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", window.SlotMin)
	}

	dates, err := PeriodDates(cfg.Period, start)
	if err != nil {
		return nil, err
	}

	template := BuildTemplate(window)
	grid := &Grid{
		Start:    start,
		Period:   cfg.Period,
		Days:     make([]*Day, 0, len(dates)),
		Persons:  persons,
		SlotMin:  window.SlotMin,
		Template: template,
	}

	for _, date := range dates {
		year, week := date.ISOWeek()
		day := &Day{
			Date:    date,
			Weekday: constants.WeekdayNames[date.Weekday()],
			ISOYear: year,
			ISOWeek: week,
			Columns: make(map[string]*Column, len(persons)+1),
			Order:   make([]string, 0, len(persons)+1),
		}

		for _, p := range persons {
			off := p.IsOff(day.Weekday)
			day.Columns[p.ID] = &Column{
				Key:      p.ID,
				PersonID: p.ID,
				DayOff:   off,
				Slots:    cloneTemplate(template, !off),
			}
			day.Order = append(day.Order, p.ID)
		}
		day.Columns[constants.ColumnCommon] = &Column{
			Key:   constants.ColumnCommon,
			Slots: cloneTemplate(template, true),
		}
		day.Order = append(day.Order, constants.ColumnCommon)

		grid.Days = append(grid.Days, day)
	}

	return grid, nil
}

// PeriodDates returns the dates covered by a period. A week is Monday to Sunday of
// the ISO week containing start; a month is every date of start's month.
func PeriodDates(period constants.PeriodKind, start time.Time) ([]time.Time, error) {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	var first, last time.Time
	switch period {
	case constants.PeriodWeek:
		offset := (int(start.Weekday()) + 6) % 7 // days since Monday
		first = start.AddDate(0, 0, -offset)
		last = first.AddDate(0, 0, 6)
	case constants.PeriodMonth:
		first = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		last = first.AddDate(0, 1, -1)
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: first,
		Until:   last,
	})
	if err != nil {
		return nil, fmt.Errorf("expanding %s starting %s: %w", period, first.Format(constants.DateFormat), err)
	}
	return rule.All(), nil
}

// Column returns the column named key on day i, or nil if either does not exist.
func (g *Grid) Column(day int, key string) *Column {
	if day < 0 || day >= len(g.Days) {
		return nil
	}
	return g.Days[day].Columns[key]
}

// HasColumn reports whether key names a column of the grid.
func (g *Grid) HasColumn(key string) bool {
	if key == constants.ColumnCommon {
		return true
	}
	for _, p := range g.Persons {
		if p.ID == key {
			return true
		}
	}
	return false
}
