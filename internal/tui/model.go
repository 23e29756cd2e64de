// Package tui is the interactive household browser: the saved schedule of a
// period, the task list and the persons of the household.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/export"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/scheduler"
	"github.com/julianstephens/hearth/internal/storage"
	"github.com/julianstephens/hearth/internal/tui/components/schedule"
	"github.com/julianstephens/hearth/internal/tui/components/tasklist"
	"github.com/julianstephens/hearth/internal/validation"
)

type SessionState int

const (
	StateSchedule SessionState = iota
	StateTasks
	StatePersons
	StateEditing
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

type TaskFormModel struct {
	Name           string
	Duration       string
	Priority       constants.Priority
	AssignedTo     string
	Recurrence     constants.RecurrenceType
	TimePreference constants.TimePreference
	Days           []string
}

type Options struct {
	// Period defaults to the stored setting.
	Period constants.PeriodKind
	// Today defaults to time.Now.
	Today time.Time
	// BeforeSave runs before a generated schedule is saved.
	BeforeSave func()
}

type Model struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler
	opts      Options
	state     SessionState
	keys      KeyMap
	help      help.Model

	period constants.PeriodKind
	start  time.Time // first date of the displayed period

	scheduleModel schedule.Model
	taskList      tasklist.Model
	personTable   table.Model
	persons       []models.Person

	form           *huh.Form
	taskForm       *TaskFormModel
	editingTask    *models.Task
	taskToDeleteID string

	status            string
	errorMsg          string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler, opts Options) (Model, error) {
	period := opts.Period
	if period == "" {
		settings, err := store.GetSettings()
		if err != nil {
			return Model{}, fmt.Errorf("failed to get settings: %w", err)
		}
		period = settings.Period
	}
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	start, err := periodStart(period, opts.Today)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		store:         store,
		scheduler:     sched,
		opts:          opts,
		state:         StateSchedule,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		period:        period,
		start:         start,
		scheduleModel: schedule.New(0, 0),
		taskList:      tasklist.New(nil, nil, 0, 0),
		personTable: table.New(
			table.WithColumns(personColumns),
			table.WithFocused(true),
		),
	}
	m.reload()
	m.loadSchedule()
	return m, nil
}

var personColumns = []table.Column{
	{Title: "Name", Width: 20},
	{Title: "Days off", Width: 24},
	{Title: "Constraints", Width: 32},
}

func periodStart(period constants.PeriodKind, day time.Time) (time.Time, error) {
	dates, err := scheduler.PeriodDates(period, day)
	if err != nil {
		return time.Time{}, err
	}
	return dates[0], nil
}

func (m Model) startDate() string {
	return m.start.Format(constants.DateFormat)
}

// reload refreshes persons and tasks from the store.
func (m *Model) reload() {
	persons, err := m.store.GetAllPersons()
	if err != nil {
		m.errorMsg = fmt.Sprintf("failed to get persons: %v", err)
		return
	}
	tasks, err := m.store.GetAllTasksIncludingDeleted()
	if err != nil {
		m.errorMsg = fmt.Sprintf("failed to get tasks: %v", err)
		return
	}
	m.persons = persons
	m.taskList.SetTasks(tasks, persons)
	m.personTable.SetRows(personRows(persons))
	m.updateValidationStatus()
}

func personRows(persons []models.Person) []table.Row {
	rows := make([]table.Row, 0, len(persons))
	for _, p := range persons {
		days := "-"
		if len(p.DaysOff) > 0 {
			days = strings.Join(p.DaysOff, ", ")
		}
		rows = append(rows, table.Row{p.Name, days, p.Constraints})
	}
	return rows
}

// loadSchedule shows the saved schedule of the current period, if any.
func (m *Model) loadSchedule() {
	rec, err := m.store.GetSchedule(m.period, m.startDate())
	switch {
	case err == nil:
		m.scheduleModel.SetRecord(&rec)
		m.selectToday()
	case errors.Is(err, storage.ErrNotFound):
		m.scheduleModel.SetRecord(nil)
	default:
		m.scheduleModel.SetRecord(nil)
		m.errorMsg = fmt.Sprintf("failed to load schedule: %v", err)
	}
}

func (m *Model) selectToday() {
	m.scheduleModel.SelectDate(m.opts.Today.Format(constants.DateFormat))
}

// shiftPeriod moves the displayed period by delta weeks or months.
func (m *Model) shiftPeriod(delta int) {
	if m.period == constants.PeriodMonth {
		m.start = m.start.AddDate(0, delta, 0)
	} else {
		m.start = m.start.AddDate(0, 0, 7*delta)
	}
	m.status = ""
	m.loadSchedule()
}

// generate builds the displayed period from the stored household and saves it.
func (m *Model) generate() error {
	settings, err := m.store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	persons, err := m.store.GetAllPersons()
	if err != nil {
		return fmt.Errorf("failed to get persons: %w", err)
	}
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	cfg, persons, tasks := models.Normalize(settings.GenerationConfig(m.period, m.startDate()), persons, tasks)
	sched, stats, err := m.scheduler.Generate(cfg, persons, tasks)
	if err != nil {
		return err
	}
	rec := export.NewRecord(cfg, persons, tasks, sched, stats)

	if m.opts.BeforeSave != nil {
		m.opts.BeforeSave()
	}
	revision, err := m.store.SaveSchedule(rec)
	if err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	logger.Info("Generated schedule", "period", sched.Period, "start", sched.StartDate, "placed", stats.Placed, "total", stats.TotalTasks)

	m.scheduleModel.SetRecord(&rec)
	m.selectToday()
	m.status = fmt.Sprintf("Saved revision %d: placed %d/%d tasks (%d%%)", revision, stats.Placed, stats.TotalTasks, stats.SuccessRate)
	return nil
}

func (m *Model) updateValidationStatus() {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}

	result := validation.New().Validate(settings, m.persons, tasks)
	switch {
	case result.HasErrors():
		m.validationWarning = fmt.Sprintf("⚠ %d conflict(s), run 'hearth validate'", len(result.Conflicts))
	case result.HasConflicts():
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	default:
		m.validationWarning = ""
	}
}

func (m *Model) resize() {
	// tabs, status line and help
	height := max(m.height-6, 1)
	width := max(m.width-4, 1)
	m.scheduleModel.SetSize(width, height)
	m.taskList.SetSize(width, height)
	m.personTable.SetHeight(height)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateSchedule {
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay, m.keys.Generate)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateSchedule {
		actions = []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.PrevPeriod, m.keys.NextPeriod, m.keys.Generate}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
