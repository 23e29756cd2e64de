package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/export"
	"github.com/julianstephens/hearth/internal/models"
)

func fixedContext() *Context {
	return &Context{Now: func() time.Time {
		return time.Date(2026, 1, 8, 15, 30, 0, 0, time.Local) // a Thursday
	}}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    constants.PeriodKind
		wantErr bool
	}{
		{"", constants.PeriodMonth, false},
		{"week", constants.PeriodWeek, false},
		{" Month ", constants.PeriodMonth, false},
		{"year", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in, constants.PeriodMonth)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	ctx := fixedContext()
	tests := []struct {
		period  constants.PeriodKind
		date    string
		want    string
		wantErr bool
	}{
		{constants.PeriodWeek, "", "2026-01-05", false},
		{constants.PeriodWeek, "today", "2026-01-05", false},
		{constants.PeriodWeek, "2026-01-11", "2026-01-05", false},
		{constants.PeriodWeek, "2026-01-12", "2026-01-12", false},
		{constants.PeriodMonth, "2026-02-17", "2026-02-01", false},
		{constants.PeriodMonth, "", "2026-01-01", false},
		{constants.PeriodWeek, "08/01/2026", "", true},
	}
	for _, tt := range tests {
		got, err := ctx.PeriodStart(tt.period, tt.date)
		if (err != nil) != tt.wantErr {
			t.Errorf("PeriodStart(%s, %q) error = %v", tt.period, tt.date, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PeriodStart(%s, %q) = %q, want %q", tt.period, tt.date, got, tt.want)
		}
	}
}

func TestParseDays(t *testing.T) {
	got, err := ParseDays("sat, Dimanche,samedi,mon")
	if err != nil {
		t.Fatalf("ParseDays failed: %v", err)
	}
	want := []string{constants.Samedi, constants.Dimanche, constants.Lundi}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("days mismatch (-want +got):\n%s", diff)
	}

	if days, err := ParseDays("  "); err != nil || days != nil {
		t.Errorf("empty input should yield nil, got %v, %v", days, err)
	}
	if _, err := ParseDays("mon,funday"); err == nil || !strings.Contains(err.Error(), "funday") {
		t.Errorf("expected an error naming the bad day, got %v", err)
	}
}

func TestFormatDays(t *testing.T) {
	if got := FormatDays([]string{constants.Dimanche, constants.Lundi}); got != "lun,dim" {
		t.Errorf("FormatDays = %q, want lun,dim", got)
	}
	if got := FormatDays(nil); got != "-" {
		t.Errorf("FormatDays(nil) = %q", got)
	}
}

func TestLocation(t *testing.T) {
	if loc, err := Location(""); err != nil || loc != time.UTC {
		t.Errorf("empty timezone should be UTC, got %v, %v", loc, err)
	}
	if loc, err := Location("Local"); err != nil || loc != time.Local {
		t.Errorf("Local should be time.Local, got %v, %v", loc, err)
	}
	if _, err := Location("Mars/Olympus"); err == nil {
		t.Error("expected an error for an unknown zone")
	}
}

func TestResolveAssignee(t *testing.T) {
	persons := []models.Person{{ID: "p1", Name: "Alice"}, {ID: "bob", Name: "Robert"}}
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", constants.AssignShared, false},
		{"All", constants.AssignShared, false},
		{"p1", "p1", false},
		{"alice", "p1", false},
		{"bob", "bob", false},
		{"carol", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveAssignee(tt.in, persons)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveAssignee(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveAssignee(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleRecord() export.Record {
	return export.Record{
		Persons: []models.Person{{ID: "alice", Name: "Alice"}, {ID: "bob", Name: "Bob"}},
		Schedule: models.Schedule{
			Period:    constants.PeriodWeek,
			StartDate: "2026-01-05",
			EndDate:   "2026-01-11",
			Weeks: []models.Week{{Year: 2026, Number: 2, Days: []models.DaySchedule{
				{Date: "2026-01-05", Weekday: constants.Lundi, Entries: []models.Entry{
					{Date: "2026-01-05", Start: "09:00", End: "09:30", TaskID: "a", TaskName: "Laundry", Column: "alice"},
					{Date: "2026-01-05", Start: "08:00", End: "08:30", TaskID: "b", TaskName: "Bins", Column: "bob"},
					{Date: "2026-01-05", Start: "18:00", End: "18:30", TaskID: "m", TaskName: "Dinner", Column: constants.ColumnCommon, Shared: true},
				}},
				{Date: "2026-01-06", Weekday: constants.Mardi},
			}}},
		},
	}
}

func TestDayRows(t *testing.T) {
	rec := sampleRecord()
	rows := dayRows(rec.Schedule.Weeks[0].Days[0], scheduleColumns(rec, ""))
	want := [][]string{
		{"08:00-08:30", "", "Bins", ""},
		{"09:00-09:30", "Laundry", "", ""},
		{"18:00-18:30", "", "", "Dinner"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSchedule(t *testing.T) {
	var buf bytes.Buffer
	RenderSchedule(&buf, sampleRecord(), RenderOptions{Person: "Alice", SkipEmpty: true})
	out := buf.String()

	for _, want := range []string{"Laundry", "Dinner", "Everyone", "Lundi", "2026-01-05"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bins") {
		t.Errorf("other persons' columns should be hidden:\n%s", out)
	}
	if strings.Contains(out, "Mardi") {
		t.Errorf("empty days should be skipped:\n%s", out)
	}
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	RenderStats(&buf, models.PlacementStats{
		TotalTasks: 3, Placed: 2, Failed: 1, SuccessRate: 67, Occurrences: 9,
		Failures: []models.Failure{{TaskID: "x", TaskName: "Paint", Reason: constants.ReasonNoSlot}},
	})
	out := buf.String()
	if !strings.Contains(out, "Placed 2/3 tasks (67%), 9 occurrences") {
		t.Errorf("missing summary:\n%s", out)
	}
	if !strings.Contains(out, "Paint: "+constants.ReasonNoSlot) {
		t.Errorf("missing failure:\n%s", out)
	}
}
