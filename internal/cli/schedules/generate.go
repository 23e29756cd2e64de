package schedules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/export"
	"github.com/julianstephens/hearth/internal/household"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
)

type GenerateCmd struct {
	Period string `help:"Period to cover (week|month). Defaults to the stored setting."`
	Start  string `help:"Any date inside the period (YYYY-MM-DD). Defaults to today."`
	File   string `short:"f" help:"Read persons, tasks and config from a household YAML/JSON file instead of storage." type:"existingfile"`
	Save   bool   `help:"Save the schedule to storage, replacing any schedule for the same period."`
	Export string `short:"o" help:"Write the schedule to this file."`
	Format string `help:"Export format (json|yaml|ics). Inferred from --export when empty."`
	Person string `help:"Only show this person's column (ID or name)."`
	Quiet  bool   `short:"q" help:"Print only the summary."`
}

func (c *GenerateCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	period, err := cli.ParsePeriod(c.Period, settings.Period)
	if err != nil {
		return err
	}

	var (
		cfg     models.GenerationConfig
		persons []models.Person
		tasks   []models.Task
	)
	if c.File != "" {
		cfg, persons, tasks, err = c.fromFile(ctx, settings)
	} else {
		cfg, persons, tasks, err = fromStore(ctx, settings)
	}
	if err != nil {
		return err
	}
	if c.Period != "" || cfg.Period == "" {
		cfg.Period = period
	}
	if c.Start != "" || cfg.StartDate == "" {
		if cfg.StartDate, err = ctx.PeriodStart(cfg.Period, c.Start); err != nil {
			return err
		}
	}

	cfg, persons, tasks = models.Normalize(cfg, persons, tasks)
	schedule, stats, err := ctx.Scheduler.Generate(cfg, persons, tasks)
	if err != nil {
		return err
	}
	rec := export.NewRecord(cfg, persons, tasks, schedule, stats)
	logger.Info("Generated schedule", "period", schedule.Period, "start", schedule.StartDate, "placed", stats.Placed, "total", stats.TotalTasks)

	if !c.Quiet {
		cli.RenderSchedule(os.Stdout, rec, cli.RenderOptions{Person: c.Person, SkipEmpty: true})
		fmt.Println()
	}
	cli.RenderStats(os.Stdout, stats)

	if c.Save {
		ctx.PerformAutomaticBackup()
		revision, err := ctx.Store.SaveSchedule(rec)
		if err != nil {
			return fmt.Errorf("failed to save schedule: %w", err)
		}
		fmt.Printf("Saved %s schedule starting %s (revision %d)\n", schedule.Period, schedule.StartDate, revision)
	}

	if c.Export != "" {
		if err := writeExport(c.Export, c.Format, rec, settings); err != nil {
			return err
		}
	}
	return nil
}

// fromStore reads the active household from storage.
func fromStore(ctx *cli.Context, settings models.Settings) (models.GenerationConfig, []models.Person, []models.Task, error) {
	persons, err := ctx.Store.GetAllPersons()
	if err != nil {
		return models.GenerationConfig{}, nil, nil, fmt.Errorf("failed to get persons: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return models.GenerationConfig{}, nil, nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return settings.GenerationConfig("", ""), persons, tasks, nil
}

// fromFile reads a household file. Config fields the file leaves empty come
// from the stored settings.
func (c *GenerateCmd) fromFile(ctx *cli.Context, settings models.Settings) (models.GenerationConfig, []models.Person, []models.Task, error) {
	f, err := household.Load(c.File)
	if err != nil {
		return models.GenerationConfig{}, nil, nil, err
	}

	cfg := f.Config
	base := settings.GenerationConfig("", "")
	if cfg.Period == "" {
		cfg.Period = base.Period
	}
	if cfg.WorkStart == "" {
		cfg.WorkStart = base.WorkStart
	}
	if cfg.WorkEnd == "" {
		cfg.WorkEnd = base.WorkEnd
	}
	if cfg.LunchStart == "" {
		cfg.LunchStart = base.LunchStart
	}
	if cfg.LunchEnd == "" {
		cfg.LunchEnd = base.LunchEnd
	}
	if cfg.SlotMin <= 0 {
		cfg.SlotMin = base.SlotMin
	}
	if cfg.StartDate != "" {
		if cfg.StartDate, err = ctx.PeriodStart(cfg.Period, cfg.StartDate); err != nil {
			return models.GenerationConfig{}, nil, nil, fmt.Errorf("%s: %w", filepath.Base(c.File), err)
		}
	}
	return cfg, f.Persons, f.Tasks, nil
}

func writeExport(path, format string, rec export.Record, settings models.Settings) error {
	var f export.Format
	if format != "" {
		var err error
		if f, err = export.ParseFormat(format); err != nil {
			return err
		}
	}
	loc, err := cli.Location(settings.Timezone)
	if err != nil {
		return err
	}
	if err := export.WriteFile(path, rec, f, loc); err != nil {
		return err
	}
	fmt.Printf("Exported schedule to %s\n", path)
	return nil
}
