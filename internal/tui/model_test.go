package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/scheduler"
	"github.com/julianstephens/hearth/internal/storage/sqlite"
	"github.com/julianstephens/hearth/internal/tui/components/tasklist"
)

var today = time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)

func setupTestModel(t *testing.T, opts Options) (Model, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.AddPerson(models.Person{ID: "alice", Name: "Alice"}); err != nil {
		t.Fatalf("failed to add person: %v", err)
	}
	task := models.NormalizeTask(models.Task{ID: "dishes", Name: "Dishes", AssignedTo: "alice", Recurrence: constants.RecurrenceDaily})
	if err := store.AddTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	if opts.Today.IsZero() {
		opts.Today = today
	}
	m, err := NewModel(store, scheduler.New(), opts)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}), store
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewModel(t *testing.T) {
	m, _ := setupTestModel(t, Options{Period: constants.PeriodWeek})

	if m.startDate() != "2026-01-05" {
		t.Errorf("start = %s, want the monday of the week", m.startDate())
	}
	if m.scheduleModel.Record != nil {
		t.Error("no schedule should be loaded before generating")
	}
	if m.taskList.Len() != 1 {
		t.Errorf("expected 1 task in the list, got %d", m.taskList.Len())
	}
	if !strings.Contains(m.View(), "Press 'g'") {
		t.Errorf("empty schedule hint missing:\n%s", m.View())
	}
}

func TestNewModel_DefaultPeriodFromSettings(t *testing.T) {
	m, _ := setupTestModel(t, Options{})
	if m.period != constants.DefaultPeriod {
		t.Errorf("period = %s, want %s", m.period, constants.DefaultPeriod)
	}
}

func TestGenerateSavesSchedule(t *testing.T) {
	saved := 0
	m, store := setupTestModel(t, Options{Period: constants.PeriodWeek, BeforeSave: func() { saved++ }})

	m = press(t, m, "g")
	if m.errorMsg != "" {
		t.Fatalf("generate failed: %s", m.errorMsg)
	}
	if saved != 1 {
		t.Errorf("BeforeSave called %d times, want 1", saved)
	}

	rec, err := store.GetSchedule(constants.PeriodWeek, "2026-01-05")
	if err != nil {
		t.Fatalf("schedule was not saved: %v", err)
	}
	if rec.Stats.Placed != 1 {
		t.Errorf("placed = %d, want 1", rec.Stats.Placed)
	}

	day, ok := m.scheduleModel.Day()
	if !ok || day.Date != "2026-01-07" {
		t.Errorf("selected day = %+v, want today", day)
	}
	if !strings.Contains(m.View(), "Dishes") {
		t.Errorf("view should list the generated task:\n%s", m.View())
	}

	m = press(t, m, "right")
	if day, _ := m.scheduleModel.Day(); day.Date != "2026-01-08" {
		t.Errorf("next day = %s, want 2026-01-08", day.Date)
	}
}

func TestShiftPeriod(t *testing.T) {
	m, _ := setupTestModel(t, Options{Period: constants.PeriodWeek})
	m = press(t, m, "g", "]")
	if m.startDate() != "2026-01-12" {
		t.Errorf("start = %s after next period", m.startDate())
	}
	if m.scheduleModel.Record != nil {
		t.Error("the next week has no saved schedule")
	}

	m = press(t, m, "[")
	if m.scheduleModel.Record == nil {
		t.Error("going back should reload the saved week")
	}

	month, _ := setupTestModel(t, Options{Period: constants.PeriodMonth})
	month = press(t, month, "[")
	if month.startDate() != "2025-12-01" {
		t.Errorf("previous month start = %s", month.startDate())
	}
}

func TestGenerateWithoutTasksReportsError(t *testing.T) {
	m, store := setupTestModel(t, Options{Period: constants.PeriodWeek})
	if err := store.DeleteTask("dishes"); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	m = press(t, m, "g")
	if m.errorMsg == "" {
		t.Error("expected an error when there is nothing to schedule")
	}
}

func TestTabsCycle(t *testing.T) {
	m, _ := setupTestModel(t, Options{Period: constants.PeriodWeek})

	m = press(t, m, "tab")
	if m.state != StateTasks {
		t.Fatalf("state = %d, want tasks", m.state)
	}
	m = press(t, m, "tab")
	if m.state != StatePersons {
		t.Fatalf("state = %d, want persons", m.state)
	}
	if !strings.Contains(m.View(), "Alice") {
		t.Errorf("persons tab should list Alice:\n%s", m.View())
	}
	m = press(t, m, "tab")
	if m.state != StateSchedule {
		t.Errorf("state = %d, want schedule", m.state)
	}
}

func TestDeleteAndRestoreTask(t *testing.T) {
	m, store := setupTestModel(t, Options{Period: constants.PeriodWeek})
	m = press(t, m, "tab")

	m = send(t, m, tasklist.DeleteTaskMsg{ID: "dishes"})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %d, want confirm delete", m.state)
	}
	m = press(t, m, "n")
	if _, err := store.GetTask("dishes"); err != nil {
		t.Fatalf("declined delete removed the task: %v", err)
	}

	m = send(t, m, tasklist.DeleteTaskMsg{ID: "dishes"})
	m = press(t, m, "y")
	if m.state != StateTasks {
		t.Errorf("state = %d, want tasks", m.state)
	}
	if _, err := store.GetTask("dishes"); err == nil {
		t.Fatal("task should be deleted")
	}

	m = send(t, m, tasklist.RestoreTaskMsg{ID: "dishes"})
	if _, err := store.GetTask("dishes"); err != nil {
		t.Errorf("task should be restored: %v", err)
	}
	if m.status != "Task restored" {
		t.Errorf("status = %q", m.status)
	}
}

func TestOpenAndCancelForm(t *testing.T) {
	m, _ := setupTestModel(t, Options{Period: constants.PeriodWeek})
	m = press(t, m, "tab")

	m = send(t, m, tasklist.AddTaskMsg{})
	if m.state != StateEditing || m.form == nil {
		t.Fatalf("state = %d, want editing", m.state)
	}
	if m.taskForm.AssignedTo != constants.AssignShared || m.taskForm.Duration != "30" {
		t.Errorf("unexpected defaults %+v", m.taskForm)
	}

	m = press(t, m, "esc")
	if m.state != StateTasks {
		t.Errorf("esc should return to tasks, state = %d", m.state)
	}
}

func TestSaveForm(t *testing.T) {
	m, store := setupTestModel(t, Options{Period: constants.PeriodWeek})

	task, err := store.GetTask("dishes")
	if err != nil {
		t.Fatal(err)
	}
	m.editingTask = &task
	m.taskForm = newTaskFormModel(task)
	m.taskForm.Name = "Dishes and counters"
	m.taskForm.Duration = "45"
	m.saveForm()

	got, _ := store.GetTask("dishes")
	if got.Name != "Dishes and counters" || got.DurationMin != 45 {
		t.Errorf("task not updated: %+v", got)
	}

	m.editingTask = &models.Task{}
	m.taskForm = &TaskFormModel{Name: "Plants", Duration: "15", AssignedTo: "alice", Recurrence: constants.RecurrenceWeekly}
	m.saveForm()
	if m.errorMsg != "" {
		t.Fatalf("add failed: %s", m.errorMsg)
	}
	if m.taskList.Len() != 2 {
		t.Errorf("list should show the new task, got %d", m.taskList.Len())
	}
}
