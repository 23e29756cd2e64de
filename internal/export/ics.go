package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

const (
	propColumn ical.ComponentProperty = "X-HEARTH-COLUMN"
	propTask   ical.ComponentProperty = "X-HEARTH-TASK"
)

// run is a stretch of back-to-back entries of one task in one column.
type run struct {
	first models.Entry
	end   string
}

// mergeRuns collapses consecutive slot entries into runs, keeping entry order.
func mergeRuns(entries []models.Entry) []run {
	var runs []run
	for _, e := range entries {
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.first.Date == e.Date && last.first.Column == e.Column &&
				last.first.TaskID == e.TaskID && last.end == e.Start {
				last.end = e.End
				continue
			}
		}
		runs = append(runs, run{first: e, end: e.End})
	}
	return runs
}

func wallClock(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid entry time %s %s: %w", date, clock, err)
	}
	return t, nil
}

// EncodeICS writes the schedule as an iCalendar feed. Each event is one merged run.
func EncodeICS(w io.Writer, rec Record, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	stamp, err := time.Parse(time.RFC3339, rec.ExportedAt)
	if err != nil {
		stamp = time.Now().UTC()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(constants.ExportProductID)

	for _, r := range mergeRuns(rec.Schedule.Entries()) {
		start, err := wallClock(r.first.Date, r.first.Start, loc)
		if err != nil {
			return err
		}
		end, err := wallClock(r.first.Date, r.end, loc)
		if err != nil {
			return err
		}

		uid := fmt.Sprintf("%s-%s-%s-%s@%s", r.first.TaskID, r.first.Column, r.first.Date, r.first.Start, constants.AppName)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(r.first.TaskName)
		event.SetDescription(rec.PersonName(r.first.Column))
		if r.first.Color != "" {
			event.AddProperty(ical.ComponentPropertyColor, r.first.Color)
		}
		event.AddProperty(propColumn, r.first.Column)
		event.AddProperty(propTask, r.first.TaskID)
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

// DecodeICS reads a feed written by EncodeICS and splits every event back into
// slot entries of slotMin minutes, in feed order.
func DecodeICS(r io.Reader, slotMin int, loc *time.Location) ([]models.Entry, error) {
	if slotMin <= 0 {
		return nil, fmt.Errorf("slot length must be positive, got %d", slotMin)
	}
	if loc == nil {
		loc = time.UTC
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var entries []models.Entry
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("event without start: %w", err)
		}
		end, err := ve.GetEndAt()
		if err != nil {
			return nil, fmt.Errorf("event without end: %w", err)
		}
		start, end = start.In(loc), end.In(loc)

		base := models.Entry{
			Date:    start.Format(constants.DateFormat),
			Weekday: constants.WeekdayNames[start.Weekday()],
		}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			base.TaskName = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertyColor); p != nil {
			base.Color = p.Value
		}
		if p := ve.GetProperty(propColumn); p != nil {
			base.Column = p.Value
		}
		if p := ve.GetProperty(propTask); p != nil {
			base.TaskID = p.Value
		}
		base.Shared = base.Column == constants.ColumnCommon

		step := time.Duration(slotMin) * time.Minute
		for t := start; t.Before(end); t = t.Add(step) {
			e := base
			e.Start = t.Format(constants.TimeFormat)
			e.End = t.Add(step).Format(constants.TimeFormat)
			entries = append(entries, e)
		}
	}
	return entries, nil
}
