package system

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/hearth/internal/backup"
	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/validation"
)

// errWarning marks a check whose failure is reported but not fatal.
var errWarning = errors.New("warning")

type check struct {
	name      string
	needsLoad bool
	run       func(*cli.Context) error
}

var checks = []check{
	{"Storage reachable", false, checkStorageReachable},
	{"Schema version", true, checkSchemaVersion},
	{"Backups present", false, checkBackupsPresent},
	{"Settings", true, checkSettings},
	{"Household validation", true, checkHousehold},
	{"Timezone", true, checkTimezone},
	{"Saved schedules", true, checkSchedules},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := false
	for _, c := range checks {
		if c.needsLoad && !reachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errWarning):
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
		if c.name == "Storage reachable" {
			reachable = err == nil
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	// SQL stores also get a round trip
	if s, ok := ctx.Store.(interface{ DB() *sql.DB }); ok {
		db := s.DB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	s, ok := ctx.Store.(interface {
		SchemaVersion() (current, latest int, err error)
	})
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}

	current, latest, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s init' to apply them)", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if !backup.Supported(path) {
		return nil
	}

	backups, err := backup.NewManager(path).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("%w: no backups found, consider creating one with '%s backup create'", errWarning, constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	result := validation.New().ValidateSettings(settings)
	if result.HasErrors() {
		return fmt.Errorf("invalid settings:\n%s", result.FormatReport())
	}
	if result.HasConflicts() {
		return fmt.Errorf("%w: %s", errWarning, result.FormatReport())
	}
	return nil
}

func checkHousehold(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	persons, err := ctx.Store.GetAllPersons()
	if err != nil {
		return fmt.Errorf("failed to get persons: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	result := validation.New().Validate(settings, persons, tasks)
	if result.HasErrors() {
		return fmt.Errorf("household has conflicts, run '%s validate' for details", constants.AppName)
	}
	if result.HasConflicts() {
		return fmt.Errorf("%w: %d warning(s), run '%s validate' for details", errWarning, len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	_, err = cli.Location(settings.Timezone)
	return err
}

func checkSchedules(ctx *cli.Context) error {
	summaries, err := ctx.Store.ListSchedules()
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}
	for _, s := range summaries {
		if _, err := ctx.Store.GetSchedule(s.Period, s.StartDate); err != nil {
			return fmt.Errorf("%s schedule starting %s is unreadable: %w", s.Period, s.StartDate, err)
		}
	}
	return nil
}
