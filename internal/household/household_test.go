package household

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/scheduler"
)

const sampleYAML = `config:
  period: week
  start_date: "2026-01-05"
  slot_min: 30
persons:
  - name: Alice
    days_off: [samedi, Sunday]
  - id: b
    name: Bob
tasks:
  - id: dishes
    name: Dishes
    recurrence: quotidien
    assigned_to: alice
  - name: Groceries
    priority: high
    assigned_to: Bob
    preferred_days: [sat]
  - name: Dinner
    assigned_to: all
    duration_min: 90
    time_preference: soir
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	f, err := Load(writeFile(t, "home.yaml", sampleYAML))
	require.NoError(t, err)

	require.Len(t, f.Persons, 2)
	assert.Equal(t, "alice", f.Persons[0].ID)
	assert.Equal(t, "b", f.Persons[1].ID)

	require.Len(t, f.Tasks, 3)
	assert.Equal(t, "dishes", f.Tasks[0].ID)
	assert.NotEmpty(t, f.Tasks[1].ID, "missing task ids are generated")
	assert.Equal(t, "b", f.Tasks[1].AssignedTo, "assignee given by name resolves to the person id")
	assert.Equal(t, constants.PriorityHigh, f.Tasks[1].Priority)

	cfg, persons, tasks := f.Normalized("")
	assert.Equal(t, "2026-01-05", cfg.StartDate)
	assert.Equal(t, constants.DefaultWorkStart, cfg.WorkStart)
	assert.Equal(t, []string{constants.Samedi, constants.Dimanche}, persons[0].DaysOff)
	assert.Equal(t, constants.RecurrenceDaily, tasks[0].Recurrence)
	assert.Equal(t, []string{constants.Samedi}, tasks[1].PreferredDays)
	assert.Equal(t, constants.AssignShared, tasks[2].AssignedTo)
	assert.Equal(t, constants.TimeEvening, tasks[2].TimePreference)
}

func TestLoadJSON(t *testing.T) {
	body := `{
  "config": {"start_date": "2026-02-01", "period": "month"},
  "persons": [{"id": "p1", "name": "Sam"}],
  "tasks": [{"id": "t1", "name": "Plants", "priority": "urgent", "assigned_to": "p1", "recurrence": "weekly"}]
}`
	f, err := Load(writeFile(t, "home.json", body))
	require.NoError(t, err)

	assert.Equal(t, constants.PeriodMonth, f.Config.Period)
	assert.Equal(t, constants.PriorityUrgent, f.Tasks[0].Priority)

	cfg, _, _ := f.Normalized("2026-03-01")
	assert.Equal(t, "2026-03-01", cfg.StartDate, "explicit start date overrides the file")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "persons: [unterminated"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	f := &File{
		Config:  models.GenerationConfig{Period: constants.PeriodWeek, StartDate: "2026-01-05", SlotMin: 15},
		Persons: []models.Person{{ID: "a", Name: "Ada", DaysOff: []string{constants.Lundi}}},
		Tasks:   []models.Task{{ID: "t", Name: "Sweep", AssignedTo: "a", Priority: constants.PriorityLow, DurationMin: 45}},
	}

	for _, name := range []string{"out/home.yaml", "out/home.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, f))

			back, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, f.Config, back.Config)
			assert.Equal(t, f.Persons, back.Persons)
			assert.Equal(t, f.Tasks, back.Tasks)
		})
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Alice":          "alice",
		"  Jean Pierre ": "jean-pierre",
		"Zoë & Max!":     "zo-max",
		"???":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, slug(in), in)
	}
}

func TestResolve_ReservedNames(t *testing.T) {
	path := writeFile(t, "household.yaml", `config:
  start_date: "2026-01-05"
persons:
  - name: Alice
  - name: Common
tasks:
  - id: dinner
    name: Dinner
    assigned_to: shared
  - id: plants
    name: Plants
    assigned_to: Common
`)
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", f.Persons[0].ID)
	assert.Equal(t, "common-person", f.Persons[1].ID)
	assert.Equal(t, "common-person", f.Tasks[1].AssignedTo)

	cfg, persons, tasks := f.Normalized("")
	schedule, stats, err := scheduler.New().Generate(cfg, persons, tasks)
	require.NoError(t, err)

	entries := schedule.Entries()
	assert.Len(t, entries, stats.Occurrences)
	for _, e := range entries {
		switch e.TaskID {
		case "dinner":
			assert.Equal(t, constants.ColumnCommon, e.Column)
			assert.True(t, e.Shared)
		case "plants":
			assert.Equal(t, "common-person", e.Column)
			assert.False(t, e.Shared)
		}
	}
	assert.Equal(t, 2, stats.Placed)
}
