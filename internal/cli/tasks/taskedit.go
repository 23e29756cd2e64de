package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

type TaskEditCmd struct {
	ID         string  `arg:"" help:"Task ID."`
	Name       *string `help:"New task name."`
	Duration   *int    `short:"d" help:"New duration in minutes."`
	Priority   *string `short:"p" help:"New priority (urgent|high|normal|low or 1-4)."`
	Assign     *string `short:"a" help:"New assignee (person ID or name, or 'shared')."`
	Recurrence *string `short:"r" help:"New recurrence (daily|weekly|once|custom|flexible)."`
	Time       *string `short:"t" help:"New time of day (any|morning|afternoon|evening)."`
	Days       *string `short:"w" help:"New comma-separated preferred days (empty string clears them)."`
	Color      *string `short:"c" help:"New display color."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return fmt.Errorf("name cannot be empty")
		}
		task.Name = name
	}
	if c.Duration != nil {
		if *c.Duration <= 0 {
			return fmt.Errorf("duration must be positive")
		}
		task.DurationMin = *c.Duration
	}
	if c.Priority != nil {
		p, err := constants.ParsePriority(*c.Priority)
		if err != nil {
			return err
		}
		if p <= 0 {
			return fmt.Errorf("priority must be positive")
		}
		task.Priority = p
	}
	if c.Assign != nil {
		persons, err := ctx.Store.GetAllPersons()
		if err != nil {
			return fmt.Errorf("failed to get persons: %w", err)
		}
		if task.AssignedTo, err = cli.ResolveAssignee(*c.Assign, persons); err != nil {
			return err
		}
	}
	if c.Recurrence != nil {
		if task.Recurrence, err = models.ParseRecurrence(*c.Recurrence); err != nil {
			return err
		}
	}
	if c.Time != nil {
		if task.TimePreference, err = models.ParseTimePreference(*c.Time); err != nil {
			return err
		}
	}
	if c.Days != nil {
		if task.PreferredDays, err = cli.ParseDays(*c.Days); err != nil {
			return err
		}
	}
	if c.Color != nil {
		task.Color = *c.Color
	}

	if task.Recurrence == constants.RecurrenceCustom && len(task.PreferredDays) == 0 {
		return fmt.Errorf("custom recurrence needs preferred days (--days)")
	}
	if task.Recurrence == constants.RecurrenceFlexible && task.IsShared() {
		return fmt.Errorf("flexible tasks need a person assignment (--assign)")
	}

	if err := ctx.Store.UpdateTask(models.NormalizeTask(task)); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Task updated: %s\n", task.Name)
	return nil
}
