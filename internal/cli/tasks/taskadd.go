package tasks

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

type TaskAddCmd struct {
	Name       string `arg:"" help:"Task name."`
	Duration   int    `short:"d" help:"Duration in minutes." default:"30"`
	Priority   string `short:"p" help:"Priority (urgent|high|normal|low or 1-4, lower is more urgent)." default:"normal"`
	Assign     string `short:"a" help:"Person ID or name, or 'shared' for the whole household." default:"shared"`
	Recurrence string `short:"r" help:"Recurrence (daily|weekly|once|custom|flexible)." default:"once"`
	Time       string `short:"t" help:"Time of day (any|morning|afternoon|evening)." default:"any"`
	Days       string `short:"w" help:"Comma-separated preferred days (e.g. lundi,jeudi or mon,thu)."`
	Color      string `short:"c" help:"Display color (hex)."`
}

func (c *TaskAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	fields, err := parseFields(c.Priority, c.Recurrence, c.Time, c.Days)
	if err != nil {
		return err
	}

	persons, err := ctx.Store.GetAllPersons()
	if err != nil {
		return fmt.Errorf("failed to get persons: %w", err)
	}
	assignee, err := cli.ResolveAssignee(c.Assign, persons)
	if err != nil {
		return err
	}

	if fields.recurrence == constants.RecurrenceCustom && len(fields.days) == 0 {
		return fmt.Errorf("custom recurrence needs preferred days (--days)")
	}
	if fields.recurrence == constants.RecurrenceFlexible && assignee == constants.AssignShared {
		return fmt.Errorf("flexible tasks need a person assignment (--assign)")
	}

	task := models.NormalizeTask(models.Task{
		ID:             uuid.New().String(),
		Name:           c.Name,
		DurationMin:    c.Duration,
		Priority:       fields.priority,
		AssignedTo:     assignee,
		Recurrence:     fields.recurrence,
		Color:          c.Color,
		PreferredDays:  fields.days,
		TimePreference: fields.time,
	})

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Name, task.ID)
	return nil
}

type taskFields struct {
	priority   constants.Priority
	recurrence constants.RecurrenceType
	time       constants.TimePreference
	days       []string
}

func parseFields(priority, recurrence, timePref, days string) (taskFields, error) {
	var f taskFields
	var err error

	if f.priority, err = constants.ParsePriority(priority); err != nil {
		return f, err
	}
	if f.priority < 0 {
		return f, fmt.Errorf("priority must be positive")
	}
	if f.recurrence, err = models.ParseRecurrence(recurrence); err != nil {
		return f, err
	}
	if f.time, err = models.ParseTimePreference(timePref); err != nil {
		return f, err
	}
	if f.days, err = cli.ParseDays(days); err != nil {
		return f, err
	}
	return f, nil
}
