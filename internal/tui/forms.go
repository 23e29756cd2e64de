package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

func newTaskFormModel(t models.Task) *TaskFormModel {
	return &TaskFormModel{
		Name:           t.Name,
		Duration:       strconv.Itoa(t.DurationMin),
		Priority:       t.Priority,
		AssignedTo:     t.AssignedTo,
		Recurrence:     t.Recurrence,
		TimePreference: t.TimePreference,
		Days:           append([]string(nil), t.PreferredDays...),
	}
}

// NewTaskForm creates the add/edit form for a task.
func NewTaskForm(fm *TaskFormModel, persons []models.Person) *huh.Form {
	assignees := []huh.Option[string]{huh.NewOption("Everyone", constants.AssignShared)}
	for _, p := range persons {
		assignees = append(assignees, huh.NewOption(p.Name, p.ID))
	}

	days := make([]huh.Option[string], 0, len(constants.WeekdayOrder))
	for _, d := range constants.WeekdayOrder {
		days = append(days, huh.NewOption(strings.ToUpper(d[:1])+d[1:], d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration (min)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("duration must be a positive number of minutes")
					}
					return nil
				}),
			huh.NewSelect[constants.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Urgent", constants.PriorityUrgent),
					huh.NewOption("High", constants.PriorityHigh),
					huh.NewOption("Normal", constants.PriorityNormal),
					huh.NewOption("Low", constants.PriorityLow),
				).
				Value(&fm.Priority),
			huh.NewSelect[string]().
				Title("Assigned to").
				Options(assignees...).
				Value(&fm.AssignedTo),
		),
		huh.NewGroup(
			huh.NewSelect[constants.RecurrenceType]().
				Title("Recurrence").
				Options(
					huh.NewOption("Once", constants.RecurrenceOnce),
					huh.NewOption("Daily", constants.RecurrenceDaily),
					huh.NewOption("Weekly", constants.RecurrenceWeekly),
					huh.NewOption("Custom days", constants.RecurrenceCustom),
					huh.NewOption("Flexible (fills gaps)", constants.RecurrenceFlexible),
				).
				Value(&fm.Recurrence),
			huh.NewSelect[constants.TimePreference]().
				Title("Time of day").
				Options(
					huh.NewOption("Any", constants.TimeAny),
					huh.NewOption("Morning", constants.TimeMorning),
					huh.NewOption("Afternoon", constants.TimeAfternoon),
					huh.NewOption("Evening", constants.TimeEvening),
				).
				Value(&fm.TimePreference),
			huh.NewMultiSelect[string]().
				Title("Preferred days").
				Description("Required for custom recurrence").
				Options(days...).
				Value(&fm.Days),
		),
	).WithTheme(huh.ThemeDracula())
}

// taskFromForm applies fm to base. A base without an ID gets a new one.
func taskFromForm(base models.Task, fm TaskFormModel) (models.Task, error) {
	t := base
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Name = strings.TrimSpace(fm.Name)
	if t.Name == "" {
		return models.Task{}, fmt.Errorf("name cannot be empty")
	}
	duration, err := strconv.Atoi(strings.TrimSpace(fm.Duration))
	if err != nil || duration <= 0 {
		return models.Task{}, fmt.Errorf("duration must be a positive number of minutes")
	}
	t.DurationMin = duration
	t.Priority = fm.Priority
	t.AssignedTo = fm.AssignedTo
	t.Recurrence = fm.Recurrence
	t.TimePreference = fm.TimePreference
	t.PreferredDays = fm.Days

	if t.Recurrence == constants.RecurrenceCustom && len(t.PreferredDays) == 0 {
		return models.Task{}, fmt.Errorf("custom recurrence needs preferred days")
	}
	if t.Recurrence == constants.RecurrenceFlexible && t.IsShared() {
		return models.Task{}, fmt.Errorf("flexible tasks need a person assignment")
	}
	return models.NormalizeTask(t), nil
}
