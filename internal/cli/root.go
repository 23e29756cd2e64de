package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/hearth/internal/backup"
	"github.com/julianstephens/hearth/internal/config"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/scheduler"
	"github.com/julianstephens/hearth/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	// Config and Target are nil/zero in tests that build a Context by hand.
	Config *config.Config
	Target config.Target
	// Now is the clock used for "today"; time.Now when nil.
	Now func() time.Time
}

// Today returns the current date at midnight UTC.
func (c *Context) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Template returns the configured work-hours template used to seed new stores.
func (c *Context) Template() models.Settings {
	if c.Config != nil {
		return c.Config.Template
	}
	return models.DefaultSettings()
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if !backup.Supported(path) {
		logger.Debug("Skipping automatic backup", "store", path)
		return
	}
	mgr := backup.NewManager(path)
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParsePeriod accepts "week" or "month"; empty input yields fallback.
func ParsePeriod(s string, fallback constants.PeriodKind) (constants.PeriodKind, error) {
	switch p := constants.PeriodKind(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return fallback, nil
	case constants.PeriodWeek, constants.PeriodMonth:
		return p, nil
	default:
		return "", fmt.Errorf("invalid period %q (want week or month)", s)
	}
}

// PeriodStart returns the first date of the period containing date. An empty
// date or "today" means the current day.
func (c *Context) PeriodStart(period constants.PeriodKind, date string) (string, error) {
	day := c.Today()
	if date != "" && !strings.EqualFold(date, "today") {
		parsed, err := time.Parse(constants.DateFormat, date)
		if err != nil {
			return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
		}
		day = parsed
	}
	dates, err := scheduler.PeriodDates(period, day)
	if err != nil {
		return "", err
	}
	return dates[0].Format(constants.DateFormat), nil
}

// ParseDays parses a comma-separated list of weekdays into canonical names.
// French and English names and their three-letter forms are accepted.
func ParseDays(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var days []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		day, ok := models.CanonicalWeekday(part)
		if !ok {
			return nil, fmt.Errorf("invalid weekday: %s", strings.TrimSpace(part))
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return days, nil
}

// FormatDays renders canonical weekday names in week order.
func FormatDays(days []string) string {
	if len(days) == 0 {
		return "-"
	}
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	var ordered []string
	for _, d := range constants.WeekdayOrder {
		if set[d] {
			ordered = append(ordered, d[:3])
		}
	}
	return strings.Join(ordered, ",")
}

// Location resolves a stored timezone name. "Local" is the machine's zone and
// an empty name is UTC.
func Location(name string) (*time.Location, error) {
	switch name {
	case "":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// ResolveAssignee maps a person id or name to the id stored on tasks.
// "shared", "all", "common" and the empty string mean the whole household.
func ResolveAssignee(value string, persons []models.Person) (string, error) {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", constants.AssignShared, "all", constants.ColumnCommon:
		return constants.AssignShared, nil
	}
	for _, p := range persons {
		if p.ID == v {
			return p.ID, nil
		}
	}
	for _, p := range persons {
		if strings.EqualFold(p.Name, v) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("unknown person %q", value)
}
