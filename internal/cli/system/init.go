package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Source database path or connection string to copy the household from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := seedTemplate(ctx); err != nil {
		return err
	}
	fmt.Printf("Initialized hearth storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if storage.Detect(dbPath) == storage.KindPostgres || dbPath == "postgresql" {
		return fmt.Errorf("--force is not supported for PostgreSQL storage")
	}
	// Don't delete if it's the source (user error protection)
	if c.Source != "" {
		if absDbPath, err := filepath.Abs(dbPath); err == nil {
			dbPath = absDbPath
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release the file before deleting it
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// seedTemplate replaces untouched default settings with the configured template.
func seedTemplate(ctx *cli.Context) error {
	template := ctx.Template()
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings != models.DefaultSettings() || settings == template {
		return nil
	}
	logger.Debug("Seeding settings from config template", "work_start", template.WorkStart, "work_end", template.WorkEnd)
	if err := ctx.Store.SaveSettings(template); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := storage.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating persons...")
	persons, err := sourceStore.GetAllPersonsIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get persons from source: %w", err)
	}
	for _, p := range persons {
		if err := ctx.Store.AddPerson(p); err != nil {
			return fmt.Errorf("failed to add person %s: %w", p.ID, err)
		}
		if p.DeletedAt != nil {
			if err := ctx.Store.DeletePerson(p.ID); err != nil {
				return fmt.Errorf("failed to mark person %s deleted: %w", p.ID, err)
			}
		}
	}
	fmt.Printf("    Migrated %d persons\n", len(persons))

	fmt.Println("  Migrating tasks...")
	tasks, err := sourceStore.GetAllTasksIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get tasks from source: %w", err)
	}
	for _, t := range tasks {
		if err := ctx.Store.AddTask(t); err != nil {
			return fmt.Errorf("failed to add task %s: %w", t.ID, err)
		}
		if t.DeletedAt != nil {
			if err := ctx.Store.DeleteTask(t.ID); err != nil {
				return fmt.Errorf("failed to mark task %s deleted: %w", t.ID, err)
			}
		}
	}
	fmt.Printf("    Migrated %d tasks\n", len(tasks))

	fmt.Println("  Migrating schedules...")
	summaries, err := sourceStore.ListSchedules()
	if err != nil {
		return fmt.Errorf("failed to list schedules from source: %w", err)
	}
	for _, s := range summaries {
		rec, err := sourceStore.GetSchedule(s.Period, s.StartDate)
		if err != nil {
			return fmt.Errorf("failed to get %s schedule %s: %w", s.Period, s.StartDate, err)
		}
		if _, err := ctx.Store.SaveSchedule(rec); err != nil {
			return fmt.Errorf("failed to save %s schedule %s: %w", s.Period, s.StartDate, err)
		}
	}
	fmt.Printf("    Migrated %d schedules\n", len(summaries))

	return nil
}
