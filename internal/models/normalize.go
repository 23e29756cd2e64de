package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hearth/internal/constants"
)

var recurrenceAliases = map[string]constants.RecurrenceType{
	"daily":        constants.RecurrenceDaily,
	"quotidien":    constants.RecurrenceDaily,
	"weekly":       constants.RecurrenceWeekly,
	"hebdomadaire": constants.RecurrenceWeekly,
	"once":         constants.RecurrenceOnce,
	"one-time":     constants.RecurrenceOnce,
	"onetime":      constants.RecurrenceOnce,
	"ponctuel":     constants.RecurrenceOnce,
	"custom":       constants.RecurrenceCustom,
	"flexible":     constants.RecurrenceFlexible,
	"filler":       constants.RecurrenceFlexible,
	"unscheduled":  constants.RecurrenceFlexible,
}

var timeAliases = map[string]constants.TimePreference{
	"any":        constants.TimeAny,
	"morning":    constants.TimeMorning,
	"matin":      constants.TimeMorning,
	"afternoon":  constants.TimeAfternoon,
	"apres-midi": constants.TimeAfternoon,
	"evening":    constants.TimeEvening,
	"soir":       constants.TimeEvening,
}

var sharedAliases = map[string]bool{
	"":                     true,
	constants.AssignShared: true,
	"all":                  true,
	constants.ColumnCommon: true,
}

// IsReservedID reports whether id is one of the assignee keywords that mean the
// whole household. Such ids cannot name a person.
func IsReservedID(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	return id != "" && sharedAliases[id]
}

// ParseRecurrence maps a recurrence spelling to its class. Empty input yields the default.
func ParseRecurrence(s string) (constants.RecurrenceType, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return constants.DefaultTaskRecurrence, nil
	}
	if r, ok := recurrenceAliases[s]; ok {
		return r, nil
	}
	return "", fmt.Errorf("invalid recurrence type: %s", s)
}

// ParseTimePreference maps a time-of-day spelling to its band. Empty input yields any.
func ParseTimePreference(s string) (constants.TimePreference, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return constants.DefaultTaskTime, nil
	}
	if p, ok := timeAliases[s]; ok {
		return p, nil
	}
	return "", fmt.Errorf("invalid time preference: %s", s)
}

// CanonicalWeekday returns the canonical name for a weekday spelling.
func CanonicalWeekday(s string) (string, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, name := range constants.WeekdayOrder {
		if s == name {
			return name, true
		}
	}
	name, ok := constants.WeekdayAliases[s]
	return name, ok
}

// CanonicalWeekdays canonicalizes names, dropping unknown entries and duplicates.
func CanonicalWeekdays(days []string) []string {
	if len(days) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		name, ok := CanonicalWeekday(d)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeTask fills every missing field of a task from the defaults table.
func NormalizeTask(t Task) Task {
	t.Name = strings.TrimSpace(t.Name)
	if t.DurationMin <= 0 {
		t.DurationMin = constants.DefaultTaskDurationMin
	}
	if t.Priority <= 0 {
		t.Priority = constants.DefaultTaskPriority
	}
	if r, err := ParseRecurrence(string(t.Recurrence)); err == nil {
		t.Recurrence = r
	} else {
		t.Recurrence = constants.DefaultTaskRecurrence
	}
	if p, err := ParseTimePreference(string(t.TimePreference)); err == nil {
		t.TimePreference = p
	} else {
		t.TimePreference = constants.DefaultTaskTime
	}
	if sharedAliases[strings.ToLower(strings.TrimSpace(t.AssignedTo))] {
		t.AssignedTo = constants.AssignShared
	}
	if t.Color == "" {
		t.Color = constants.DefaultTaskColor
	}
	t.PreferredDays = CanonicalWeekdays(t.PreferredDays)
	return t
}

// NormalizePerson fills a person's missing fields. index picks the palette color.
func NormalizePerson(p Person, index int) Person {
	p.Name = strings.TrimSpace(p.Name)
	if p.Color == "" {
		p.Color = constants.PersonPalette[index%len(constants.PersonPalette)]
	}
	p.DaysOff = CanonicalWeekdays(p.DaysOff)
	return p
}

// NormalizeConfig fills the generation config from the default settings.
func NormalizeConfig(c GenerationConfig) GenerationConfig {
	if c.Period == "" {
		c.Period = constants.DefaultPeriod
	}
	if c.WorkStart == "" {
		c.WorkStart = constants.DefaultWorkStart
	}
	if c.WorkEnd == "" {
		c.WorkEnd = constants.DefaultWorkEnd
	}
	if c.LunchStart == "" {
		c.LunchStart = constants.DefaultLunchStart
	}
	if c.LunchEnd == "" {
		c.LunchEnd = constants.DefaultLunchEnd
	}
	if c.SlotMin <= 0 {
		c.SlotMin = constants.DefaultSlotMin
	}
	return c
}

// Normalize runs every defaulting rule once. Blank-named tasks are dropped.
func Normalize(cfg GenerationConfig, persons []Person, tasks []Task) (GenerationConfig, []Person, []Task) {
	outPersons := make([]Person, 0, len(persons))
	for i, p := range persons {
		outPersons = append(outPersons, NormalizePerson(p, i))
	}
	outTasks := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		t = NormalizeTask(t)
		if t.Name == "" {
			continue
		}
		outTasks = append(outTasks, t)
	}
	return NormalizeConfig(cfg), outPersons, outTasks
}
