package scheduler

import (
	"testing"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

func mustGrid(t *testing.T, cfg models.GenerationConfig, persons []models.Person) *Grid {
	t.Helper()
	g, err := BuildGrid(cfg, persons)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	return g
}

func occupy(g *Grid, day int, key string, slots ...int) {
	col := g.Column(day, key)
	for _, i := range slots {
		col.Slots[i].TaskID = "busy"
		col.Slots[i].Available = false
	}
}

func personal(id, assignee string, duration int) models.Task {
	return models.Task{
		ID:             id,
		Name:           id,
		DurationMin:    duration,
		Priority:       constants.PriorityNormal,
		AssignedTo:     assignee,
		Recurrence:     constants.RecurrenceOnce,
		TimePreference: constants.TimeAny,
	}
}

func shared(id string, duration int) models.Task {
	return personal(id, constants.AssignShared, duration)
}

func TestSlotsNeeded(t *testing.T) {
	g := &Grid{SlotMin: 30}
	tests := []struct {
		duration int
		want     int
	}{
		{30, 1},
		{31, 2},
		{60, 2},
		{45, 2},
		{10, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := g.SlotsNeeded(tt.duration); got != tt.want {
			t.Errorf("SlotsNeeded(%d) = %d, want %d", tt.duration, got, tt.want)
		}
	}
}

func TestFindSlot_FirstFit(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}})

	pos, ok := g.FindSlot(personal("t1", "alice", 60), SearchOptions{})
	if !ok {
		t.Fatal("expected a slot")
	}
	if pos != (Position{Day: 0, Slot: 0, Column: "alice"}) {
		t.Errorf("unexpected position %+v", pos)
	}
}

func TestFindSlot_ConsecutiveRun(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}})
	occupy(g, 0, "alice", 1) // 10:00 taken on Monday

	// 09:00 is free but 10:00 is not; 11:00 is followed by the lunch gap.
	pos, ok := g.FindSlot(personal("t1", "alice", 120), SearchOptions{PinDay: true})
	if !ok {
		t.Fatal("expected a slot")
	}
	if pos.Day != 0 || g.Days[0].Columns["alice"].Slots[pos.Slot].Start != 13*60 {
		t.Errorf("expected Monday 13:00, got day %d slot %d", pos.Day, pos.Slot)
	}
}

func TestFindSlot_RejectsIsolatedFreeSlot(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}})
	occupy(g, 0, "alice", 1, 2, 3, 4, 5, 6)

	if _, ok := g.FindSlot(personal("t1", "alice", 60), SearchOptions{PinDay: true}); !ok {
		t.Error("a one-slot task should fit the single free slot")
	}
	if _, ok := g.FindSlot(personal("t2", "alice", 90), SearchOptions{PinDay: true}); ok {
		t.Error("a two-slot task must not fit a single free slot")
	}
}

func TestFindSlot_RunPastEndOfDay(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}})
	occupy(g, 0, "alice", 0, 1, 2, 3, 4, 5)

	if _, ok := g.FindSlot(personal("t1", "alice", 120), SearchOptions{PinDay: true}); ok {
		t.Error("a run must not extend past the last slot")
	}
}

func TestFindSlot_TimePreference(t *testing.T) {
	cfg := weekConfig()
	cfg.WorkStart = "08:00"
	cfg.WorkEnd = "20:00"
	g := mustGrid(t, cfg, []models.Person{{ID: "alice"}})

	tests := []struct {
		pref constants.TimePreference
		want string
	}{
		{constants.TimeAny, "08:00"},
		{constants.TimeMorning, "08:00"},
		{constants.TimeAfternoon, "13:00"},
		{constants.TimeEvening, "18:00"},
	}
	for _, tt := range tests {
		t.Run(string(tt.pref), func(t *testing.T) {
			pos, ok := g.FindSlot(personal("t", "alice", 60), SearchOptions{TimePreference: tt.pref})
			if !ok {
				t.Fatal("expected a slot")
			}
			got := models.FormatClock(g.Days[pos.Day].Columns["alice"].Slots[pos.Slot].Start)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFindSlot_EveningOutsideWindow(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}})
	if _, ok := g.FindSlot(personal("t", "alice", 60), SearchOptions{TimePreference: constants.TimeEvening}); ok {
		t.Error("no evening slot exists in a 09:00-17:00 window")
	}
}

func TestFindSlot_Weekdays(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}})

	pos, ok := g.FindSlot(personal("t", "alice", 60), SearchOptions{Weekdays: []string{constants.Jeudi}})
	if !ok {
		t.Fatal("expected a slot")
	}
	if g.Days[pos.Day].Weekday != constants.Jeudi {
		t.Errorf("expected jeudi, got %s", g.Days[pos.Day].Weekday)
	}
}

func TestFindSlot_SkipsDayOff(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice", DaysOff: []string{constants.Lundi, constants.Mardi}}})

	pos, ok := g.FindSlot(personal("t", "alice", 60), SearchOptions{})
	if !ok {
		t.Fatal("expected a slot")
	}
	if g.Days[pos.Day].Weekday != constants.Mercredi {
		t.Errorf("expected mercredi, got %s", g.Days[pos.Day].Weekday)
	}

	if _, ok := g.FindSlot(personal("t", "alice", 60), SearchOptions{StartDay: 0, PinDay: true}); ok {
		t.Error("pinned search on a day off must fail")
	}
}

func TestFindSlot_StartDayNeverLooksBack(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}})

	pos, ok := g.FindSlot(personal("t", "alice", 60), SearchOptions{StartDay: 3})
	if !ok {
		t.Fatal("expected a slot")
	}
	if pos.Day != 3 {
		t.Errorf("expected day 3, got %d", pos.Day)
	}
}

func TestFindSlot_SharedRequiresEveryone(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}, {ID: "bob"}})
	occupy(g, 0, "bob", 0)

	pos, ok := g.FindSlot(shared("dinner", 60), SearchOptions{})
	if !ok {
		t.Fatal("expected a slot")
	}
	if pos != (Position{Day: 0, Slot: 1, Column: constants.ColumnCommon}) {
		t.Errorf("unexpected position %+v", pos)
	}
}

func TestFindSlot_SharedBlockedByDayOff(t *testing.T) {
	g := mustGrid(t, weekConfig(), []models.Person{{ID: "alice"}, {ID: "bob", DaysOff: []string{constants.Lundi}}})

	pos, ok := g.FindSlot(shared("dinner", 60), SearchOptions{})
	if !ok {
		t.Fatal("expected a slot")
	}
	if g.Days[pos.Day].Weekday != constants.Mardi {
		t.Errorf("shared task should skip bob's day off, got %s", g.Days[pos.Day].Weekday)
	}
}
