package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/scheduler"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicatePersonID    ConflictType = "duplicate_person_id"
	ConflictDuplicateTaskName    ConflictType = "duplicate_task_name"
	ConflictUnknownAssignee      ConflictType = "unknown_assignee"
	ConflictUnknownWeekday       ConflictType = "unknown_weekday"
	ConflictUnknownRecurrence    ConflictType = "unknown_recurrence"
	ConflictUnknownTimePref      ConflictType = "unknown_time_preference"
	ConflictExceedsDayCapacity   ConflictType = "exceeds_day_capacity"
	ConflictSharedFiller         ConflictType = "shared_filler"
	ConflictInvalidTime          ConflictType = "invalid_time"
	ConflictLunchOutsideWork     ConflictType = "lunch_outside_work_window"
	ConflictSlotNotDividing      ConflictType = "slot_not_dividing_window"
	ConflictPersonNeverAvailable ConflictType = "person_never_available"
	ConflictReservedPersonID     ConflictType = "reserved_person_id"
	ConflictDuplicateTaskID      ConflictType = "duplicate_task_id"
)

// Severity tells whether a conflict blocks generation or only deserves attention.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in the household or the settings
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Items       []string // Person/task names involved
	TaskIDs     []string // IDs of tasks involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict is an error rather than a warning
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Merge appends the conflicts of other.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		prefix := ""
		if conflict.Severity == SeverityWarning {
			prefix = "(warning) "
		}
		fmt.Fprintf(&b, "- %s%s\n", prefix, conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	if c.Severity == "" {
		c.Severity = SeverityError
	}
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator validates households and settings for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate runs every check. Persons and tasks are taken as entered, before
// normalization, so misspelled weekdays and recurrences are still visible.
func (v *Validator) Validate(settings models.Settings, persons []models.Person, tasks []models.Task) ValidationResult {
	result := v.ValidateSettings(settings)
	result.Merge(v.ValidatePersons(persons))

	var window *models.Window
	if !result.HasErrors() {
		w, err := settings.GenerationConfig("", "").Window()
		if err == nil {
			window = &w
		}
	}
	result.Merge(v.ValidateTasks(tasks, persons, window))
	return result
}

// ValidateSettings checks the work-hours template.
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	clocks := []struct {
		name  string
		value string
		dst   *int
	}{
		{constants.SettingWorkStart, s.WorkStart, new(int)},
		{constants.SettingWorkEnd, s.WorkEnd, new(int)},
		{constants.SettingLunchStart, s.LunchStart, new(int)},
		{constants.SettingLunchEnd, s.LunchEnd, new(int)},
	}
	valid := true
	for _, c := range clocks {
		m, err := models.ParseClock(c.value)
		if err != nil {
			valid = false
			result.add(Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Setting %s has invalid time: %q (want HH:MM)", c.name, c.value),
				Items:       []string{c.name},
			})
			continue
		}
		*c.dst = m
	}

	if s.SlotMin <= 0 {
		valid = false
		result.add(Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("Setting %s must be positive, got %d", constants.SettingSlotMin, s.SlotMin),
			Items:       []string{constants.SettingSlotMin},
		})
	}
	if !valid {
		return result
	}

	workStart, workEnd := *clocks[0].dst, *clocks[1].dst
	lunchStart, lunchEnd := *clocks[2].dst, *clocks[3].dst

	if workEnd <= workStart {
		result.add(Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("Work window ends (%s) before it starts (%s)", s.WorkEnd, s.WorkStart),
			Items:       []string{constants.SettingWorkStart, constants.SettingWorkEnd},
		})
		return result
	}
	if lunchEnd < lunchStart || lunchStart < workStart || lunchEnd > workEnd {
		result.add(Conflict{
			Type:        ConflictLunchOutsideWork,
			Description: fmt.Sprintf("Lunch window %s-%s is not inside the work window %s-%s", s.LunchStart, s.LunchEnd, s.WorkStart, s.WorkEnd),
			Items:       []string{constants.SettingLunchStart, constants.SettingLunchEnd},
		})
	}
	if (workEnd-workStart)%s.SlotMin != 0 {
		result.add(Conflict{
			Type:     ConflictSlotNotDividing,
			Severity: SeverityWarning,
			Description: fmt.Sprintf("Slot length %d does not divide the work window %s-%s; the last %d minutes are never scheduled",
				s.SlotMin, s.WorkStart, s.WorkEnd, (workEnd-workStart)%s.SlotMin),
			Items: []string{constants.SettingSlotMin},
		})
	}

	return result
}

// ValidatePersons checks ids and day-off names.
func (v *Validator) ValidatePersons(persons []models.Person) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make(map[string][]string)
	var order []string
	for _, p := range persons {
		if p.DeletedAt != nil {
			continue
		}
		if _, seen := ids[p.ID]; !seen {
			order = append(order, p.ID)
		}
		ids[p.ID] = append(ids[p.ID], p.Name)

		if models.IsReservedID(p.ID) {
			result.add(Conflict{
				Type:        ConflictReservedPersonID,
				Description: fmt.Sprintf("Person \"%s\" uses the reserved id %q; tasks assigned to it would be shared", p.Name, p.ID),
				Items:       []string{p.Name},
			})
		}

		for _, d := range p.DaysOff {
			if _, ok := models.CanonicalWeekday(d); !ok {
				result.add(Conflict{
					Type:        ConflictUnknownWeekday,
					Description: fmt.Sprintf("Person \"%s\" has unknown day off: %q", p.Name, d),
					Items:       []string{p.Name},
				})
			}
		}
		if len(models.CanonicalWeekdays(p.DaysOff)) == len(constants.WeekdayOrder) {
			result.add(Conflict{
				Type:        ConflictPersonNeverAvailable,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Person \"%s\" is off every day; shared tasks can never be placed", p.Name),
				Items:       []string{p.Name},
			})
		}
	}

	for _, id := range order {
		if names := ids[id]; len(names) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicatePersonID,
				Description: fmt.Sprintf("Duplicate person id: \"%s\" (names: %v)", id, names),
				Items:       names,
			})
		}
	}
	return result
}

// ValidateTasks checks tasks against the persons and, when window is set, the
// work-hours template.
func (v *Validator) ValidateTasks(tasks []models.Task, persons []models.Person, window *models.Window) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := map[string]bool{}
	for _, p := range persons {
		if p.DeletedAt == nil {
			known[p.ID] = true
		}
	}

	capacity := -1
	if window != nil {
		capacity = longestRun(*window)
	}

	nameCount := make(map[string][]string)
	var names []string
	idNames := make(map[string][]string)
	var idOrder []string
	for _, task := range tasks {
		if task.DeletedAt != nil {
			continue
		}
		name := strings.TrimSpace(task.Name)
		if name == "" {
			continue
		}
		if _, seen := idNames[task.ID]; !seen {
			idOrder = append(idOrder, task.ID)
		}
		idNames[task.ID] = append(idNames[task.ID], name)
		if _, seen := nameCount[name]; !seen {
			names = append(names, name)
		}
		nameCount[name] = append(nameCount[name], task.ID)

		normalized := models.NormalizeTask(task)

		if _, err := models.ParseRecurrence(string(task.Recurrence)); err != nil {
			result.add(Conflict{
				Type:        ConflictUnknownRecurrence,
				Description: fmt.Sprintf("Task \"%s\" has unknown recurrence %q", name, task.Recurrence),
				Items:       []string{name},
				TaskIDs:     []string{task.ID},
			})
		}
		if _, err := models.ParseTimePreference(string(task.TimePreference)); err != nil {
			result.add(Conflict{
				Type:        ConflictUnknownTimePref,
				Description: fmt.Sprintf("Task \"%s\" has unknown time preference %q", name, task.TimePreference),
				Items:       []string{name},
				TaskIDs:     []string{task.ID},
			})
		}
		for _, d := range task.PreferredDays {
			if _, ok := models.CanonicalWeekday(d); !ok {
				result.add(Conflict{
					Type:        ConflictUnknownWeekday,
					Description: fmt.Sprintf("Task \"%s\" has unknown preferred day: %q", name, d),
					Items:       []string{name},
					TaskIDs:     []string{task.ID},
				})
			}
		}

		if normalized.IsShared() {
			if normalized.Recurrence == constants.RecurrenceFlexible {
				result.add(Conflict{
					Type:        ConflictSharedFiller,
					Description: fmt.Sprintf("Filler task \"%s\" is assigned to everyone; fillers need one person", name),
					Items:       []string{name},
					TaskIDs:     []string{task.ID},
				})
			}
		} else if !known[normalized.AssignedTo] {
			result.add(Conflict{
				Type:        ConflictUnknownAssignee,
				Description: fmt.Sprintf("Task \"%s\" is assigned to unknown person %q", name, task.AssignedTo),
				Items:       []string{name},
				TaskIDs:     []string{task.ID},
			})
		}

		if capacity >= 0 && normalized.Recurrence != constants.RecurrenceFlexible && normalized.DurationMin > capacity {
			result.add(Conflict{
				Type:        ConflictExceedsDayCapacity,
				Description: fmt.Sprintf("Task \"%s\" lasts %d minutes; the longest free stretch of a day is %d minutes", name, normalized.DurationMin, capacity),
				Items:       []string{name},
				TaskIDs:     []string{task.ID},
			})
		}
	}

	for _, name := range names {
		if ids := nameCount[name]; len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateTaskName,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Duplicate task name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				TaskIDs:     ids,
			})
		}
	}

	for _, id := range idOrder {
		if dup := idNames[id]; len(dup) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateTaskID,
				Description: fmt.Sprintf("Duplicate task id: \"%s\" (names: %v)", id, dup),
				Items:       dup,
				TaskIDs:     []string{id},
			})
		}
	}

	return result
}

// longestRun is the longest stretch, in minutes, of back-to-back template slots.
func longestRun(w models.Window) int {
	slots := scheduler.BuildTemplate(w)
	best, cur := 0, 0
	for i, s := range slots {
		if i > 0 && slots[i-1].End == s.Start {
			cur += s.End - s.Start
		} else {
			cur = s.End - s.Start
		}
		if cur > best {
			best = cur
		}
	}
	return best
}

// AutoFixDuplicateTasks removes duplicate tasks, keeping one per name.
// Returns a slice of FixActions describing what was fixed
func AutoFixDuplicateTasks(conflicts []Conflict, tasks []models.Task, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	taskMap := make(map[string]models.Task)
	for _, task := range tasks {
		taskMap[task.ID] = task
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateTaskName || len(conflict.TaskIDs) <= 1 {
			continue
		}

		var tasksToCheck []models.Task
		for _, id := range conflict.TaskIDs {
			if task, ok := taskMap[id]; ok && task.DeletedAt == nil {
				tasksToCheck = append(tasksToCheck, task)
			}
		}
		if len(tasksToCheck) <= 1 {
			continue
		}

		// Keep the lowest id.
		sort.Slice(tasksToCheck, func(i, j int) bool {
			return tasksToCheck[i].ID < tasksToCheck[j].ID
		})

		keepTask := tasksToCheck[0]
		var deletedIDs, failedIDs []string
		for _, task := range tasksToCheck[1:] {
			if err := deleteFunc(task.ID); err == nil {
				deletedIDs = append(deletedIDs, task.ID)
			} else {
				failedIDs = append(failedIDs, task.ID)
			}
		}

		if len(deletedIDs) > 0 {
			actionMsg := fmt.Sprintf("Removed %d duplicate task(s) with name \"%s\" (kept ID: %s, removed: %v)", len(deletedIDs), keepTask.Name, keepTask.ID, deletedIDs)
			if len(failedIDs) > 0 {
				actionMsg += fmt.Sprintf(" (failed to remove: %v)", failedIDs)
			}
			actions = append(actions, FixAction{Action: actionMsg, SourceConflict: conflict})
		} else if len(failedIDs) > 0 {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates for \"%s\": %v", keepTask.Name, failedIDs),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}
