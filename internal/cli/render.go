package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/export"
	"github.com/julianstephens/hearth/internal/models"
)

// RenderOptions narrows what RenderSchedule prints.
type RenderOptions struct {
	// Person limits the grid to one person's column plus the common column.
	Person string
	// SkipEmpty hides days without entries.
	SkipEmpty bool
}

// RenderSchedule writes one table per day: a row per occupied start time and
// a column per person, followed by the common column.
func RenderSchedule(w io.Writer, rec export.Record, opts RenderOptions) {
	sched := rec.Schedule
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s %s → %s", sched.Period, sched.StartDate, sched.EndDate)))

	columns := scheduleColumns(rec, opts.Person)
	headers := []string{"Time"}
	for _, col := range columns {
		headers = append(headers, rec.PersonName(col))
	}

	for _, week := range sched.Weeks {
		fmt.Fprintln(w)
		fmt.Fprintln(w, HeaderStyle.Render(fmt.Sprintf("Week %d, %d", week.Number, week.Year)))
		for _, day := range week.Days {
			rows := dayRows(day, columns)
			if len(rows) == 0 && opts.SkipEmpty {
				continue
			}
			fmt.Fprintf(w, "%s %s\n", capitalize(day.Weekday), MutedStyle.Render(day.Date))
			if len(rows) == 0 {
				fmt.Fprintln(w, MutedStyle.Render("  nothing scheduled"))
				continue
			}
			fmt.Fprintln(w, Table(headers, rows))
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func scheduleColumns(rec export.Record, person string) []string {
	var cols []string
	for _, p := range rec.Persons {
		if person == "" || p.ID == person || strings.EqualFold(p.Name, person) {
			cols = append(cols, p.ID)
		}
	}
	return append(cols, constants.ColumnCommon)
}

func dayRows(day models.DaySchedule, columns []string) [][]string {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	cells := make(map[string][]string)
	for _, e := range day.Entries {
		i, ok := index[e.Column]
		if !ok {
			continue
		}
		label := e.Start + "-" + e.End
		row, ok := cells[label]
		if !ok {
			row = make([]string, len(columns))
			cells[label] = row
		}
		row[i] = Swatch(e.Color, e.TaskName)
	}

	labels := make([]string, 0, len(cells))
	for l := range cells {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, append([]string{l}, cells[l]...))
	}
	return rows
}

// RenderStats writes the placement summary and every failed task.
func RenderStats(w io.Writer, stats models.PlacementStats) {
	style := SuccessStyle
	if stats.Failed > 0 {
		style = WarningStyle
	}
	fmt.Fprintln(w, style.Render(fmt.Sprintf("Placed %d/%d tasks (%d%%), %d occurrences",
		stats.Placed, stats.TotalTasks, stats.SuccessRate, stats.Occurrences)))
	for _, f := range stats.Failures {
		fmt.Fprintf(w, "  %s %s: %s\n", ErrorStyle.Render("✗"), f.TaskName, f.Reason)
	}
}
