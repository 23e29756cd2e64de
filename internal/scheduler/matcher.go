package scheduler

import (
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

// SearchOptions narrows a first-fit search.
type SearchOptions struct {
	TimePreference constants.TimePreference
	// Weekdays restricts the search to these canonical weekday names. Empty means any day.
	Weekdays []string
	// StartDay is the first day index searched. Earlier days are never considered.
	StartDay int
	// PinDay limits the search to StartDay alone.
	PinDay bool
}

// Position is where a task fits.
type Position struct {
	Day    int
	Slot   int
	Column string
}

// SlotsNeeded is the number of consecutive slots a task of durationMin occupies.
func (g *Grid) SlotsNeeded(durationMin int) int {
	if g.SlotMin <= 0 || durationMin <= 0 {
		return 1
	}
	return (durationMin + g.SlotMin - 1) / g.SlotMin
}

// FindSlot returns the first position satisfying the task's column, the search
// options, its duration and, for shared tasks, every person's availability.
func (g *Grid) FindSlot(task models.Task, opts SearchOptions) (Position, bool) {
	key := task.ColumnKey()
	needed := g.SlotsNeeded(task.DurationMin)

	last := len(g.Days) - 1
	if opts.PinDay {
		last = opts.StartDay
	}

	for d := opts.StartDay; d >= 0 && d <= last && d < len(g.Days); d++ {
		day := g.Days[d]
		if !weekdayAllowed(day.Weekday, opts.Weekdays) {
			continue
		}
		col, ok := day.Columns[key]
		if !ok || col.DayOff {
			continue
		}

		for i, slot := range col.Slots {
			if !inBand(slot.Start, opts.TimePreference) {
				continue
			}
			if !slot.Free() {
				continue
			}
			if !runFree(col.Slots, i, needed) {
				continue
			}
			if task.IsShared() && !g.personsFree(day, i, needed) {
				continue
			}
			return Position{Day: d, Slot: i, Column: key}, true
		}
	}

	return Position{}, false
}

func (g *Grid) personsFree(day *Day, from, n int) bool {
	for _, p := range g.Persons {
		col, ok := day.Columns[p.ID]
		if !ok {
			continue
		}
		if !runFree(col.Slots, from, n) {
			return false
		}
	}
	return true
}

// runFree reports whether n slots starting at from are free and back to back.
// A run never crosses the lunch gap or the end of the day.
func runFree(slots []Slot, from, n int) bool {
	if from+n > len(slots) {
		return false
	}
	for k := 0; k < n; k++ {
		s := slots[from+k]
		if !s.Free() {
			return false
		}
		if k > 0 && slots[from+k-1].End != s.Start {
			return false
		}
	}
	return true
}

func weekdayAllowed(weekday string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, w := range allowed {
		if w == weekday {
			return true
		}
	}
	return false
}

func inBand(startMin int, pref constants.TimePreference) bool {
	hour := startMin / 60
	switch pref {
	case constants.TimeMorning:
		return hour >= constants.MorningStartHour && hour < constants.MorningEndHour
	case constants.TimeAfternoon:
		return hour >= constants.AfternoonStartHour && hour < constants.EveningStartHour
	case constants.TimeEvening:
		return hour >= constants.EveningStartHour
	default:
		return true
	}
}
