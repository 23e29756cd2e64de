package scheduler

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

// passOrder is the fixed sequence of slot-matched passes. Fillers run last.
var passOrder = []constants.RecurrenceType{
	constants.RecurrenceDaily,
	constants.RecurrenceWeekly,
	constants.RecurrenceOnce,
	constants.RecurrenceCustom,
}

// outcome collects the placement result of one run.
type outcome struct {
	placements []models.Placement
	failures   []models.Failure
	counts     map[string]int // placements per task id
}

func newOutcome() *outcome {
	return &outcome{counts: make(map[string]int)}
}

func (o *outcome) fail(task models.Task, reason string) {
	o.failures = append(o.failures, models.Failure{
		TaskID:   task.ID,
		TaskName: task.Name,
		Reason:   reason,
	})
}

// engine owns the grid for the duration of a run; nothing else writes to it.
type engine struct {
	grid *Grid
	out  *outcome
	log  *log.Logger
}

// SortTasks orders tasks by priority, shared before personal, then longest first.
// Remaining ties keep their input order.
func SortTasks(tasks []models.Task) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.IsShared() != b.IsShared() {
			return a.IsShared()
		}
		return a.DurationMin > b.DurationMin
	})
	return sorted
}

// Place writes task into the run of slots starting at pos. For shared tasks the
// same run is blocked in every person's column of that day.
func (g *Grid) Place(task models.Task, pos Position) {
	day := g.Days[pos.Day]
	col := day.Columns[pos.Column]
	needed := g.SlotsNeeded(task.DurationMin)

	for k := 0; k < needed; k++ {
		s := &col.Slots[pos.Slot+k]
		s.TaskID = task.ID
		s.Available = false
	}

	if !task.IsShared() {
		return
	}
	for _, p := range g.Persons {
		pc, ok := day.Columns[p.ID]
		if !ok {
			continue
		}
		for k := 0; k < needed; k++ {
			s := &pc.Slots[pos.Slot+k]
			s.Available = false
			s.BlockedBy = task.ID
		}
	}
}

func (e *engine) run(tasks []models.Task) {
	sorted := SortTasks(tasks)

	for _, class := range passOrder {
		before := len(e.out.placements)
		for _, task := range sorted {
			if task.Recurrence != class {
				continue
			}
			e.placeTask(task)
		}
		e.debug("pass finished", "class", class, "placements", len(e.out.placements)-before)
	}

	var fillers []models.Task
	for _, task := range sorted {
		if task.Recurrence == constants.RecurrenceFlexible {
			fillers = append(fillers, task)
		}
	}
	before := len(e.out.placements)
	e.fillGaps(fillers)
	e.debug("pass finished", "class", constants.RecurrenceFlexible, "placements", len(e.out.placements)-before)
}

// placeTask turns a task's recurrence class into search attempts.
func (e *engine) placeTask(task models.Task) {
	if !e.grid.HasColumn(task.ColumnKey()) {
		e.out.fail(task, fmt.Sprintf(constants.ReasonUnknownAssignee, task.AssignedTo))
		return
	}

	reason := constants.ReasonNoSlot
	switch task.Recurrence {
	case constants.RecurrenceDaily:
		for d := range e.grid.Days {
			e.attempt(task, SearchOptions{
				TimePreference: task.TimePreference,
				StartDay:       d,
				PinDay:         true,
			})
		}
		reason = constants.ReasonNoSlotAnyDay
	case constants.RecurrenceWeekly, constants.RecurrenceOnce:
		e.attempt(task, SearchOptions{
			TimePreference: task.TimePreference,
			Weekdays:       task.PreferredDays,
		})
	case constants.RecurrenceCustom:
		if len(task.PreferredDays) == 0 {
			e.attempt(task, SearchOptions{TimePreference: task.TimePreference})
			break
		}
		for _, wd := range task.PreferredDays {
			e.attempt(task, SearchOptions{
				TimePreference: task.TimePreference,
				Weekdays:       []string{wd},
			})
		}
	}

	if e.out.counts[task.ID] == 0 {
		e.out.fail(task, reason)
		e.debug("task not placed", "task", task.Name, "reason", reason)
	}
}

// attempt runs one first-fit search and places the task if it finds a position.
func (e *engine) attempt(task models.Task, opts SearchOptions) {
	pos, ok := e.grid.FindSlot(task, opts)
	if !ok {
		return
	}
	e.grid.Place(task, pos)
	e.record(task, pos, e.grid.SlotsNeeded(task.DurationMin))
}

func (e *engine) record(task models.Task, pos Position, slots int) {
	day := e.grid.Days[pos.Day]
	col := day.Columns[pos.Column]
	e.out.placements = append(e.out.placements, models.Placement{
		TaskID: task.ID,
		Date:   day.Date.Format(constants.DateFormat),
		Start:  models.FormatClock(col.Slots[pos.Slot].Start),
		End:    models.FormatClock(col.Slots[pos.Slot+slots-1].End),
		Column: pos.Column,
	})
	e.out.counts[task.ID]++
}

// fillGaps gives each person's empty slots to the first filler task assigned to them.
func (e *engine) fillGaps(fillers []models.Task) {
	owners := make(map[string]models.Task)
	for _, task := range fillers {
		if task.IsShared() {
			e.out.fail(task, constants.ReasonFillerShared)
			continue
		}
		if !e.grid.HasColumn(task.AssignedTo) {
			e.out.fail(task, fmt.Sprintf(constants.ReasonUnknownAssignee, task.AssignedTo))
			continue
		}
		if owner, ok := owners[task.AssignedTo]; ok {
			e.out.fail(task, fmt.Sprintf(constants.ReasonFillerClaimedBy, owner.Name))
			continue
		}
		owners[task.AssignedTo] = task
	}

	for _, p := range e.grid.Persons {
		task, ok := owners[p.ID]
		if !ok {
			continue
		}
		for d, day := range e.grid.Days {
			col := day.Columns[p.ID]
			for i := range col.Slots {
				s := &col.Slots[i]
				if !s.Free() || s.BlockedBy != "" {
					continue
				}
				s.TaskID = task.ID
				s.Available = false
				e.record(task, Position{Day: d, Slot: i, Column: p.ID}, 1)
			}
		}
		if e.out.counts[task.ID] == 0 {
			e.out.fail(task, constants.ReasonFillerNoGap)
		}
		delete(owners, p.ID)
	}
}

func (e *engine) debug(msg string, keyvals ...interface{}) {
	if e.log != nil {
		e.log.Debug(msg, keyvals...)
	}
}
