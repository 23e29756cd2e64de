package tasks

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/models"
)

type TaskListCmd struct {
	All     bool   `short:"a" help:"Include deleted tasks."`
	ShowIDs bool   `help:"Show task IDs." name:"show-ids"`
	Person  string `help:"Only tasks assigned to this person (ID or name)."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if c.All {
		tasks, err = ctx.Store.GetAllTasksIncludingDeleted()
	}
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	persons, err := ctx.Store.GetAllPersonsIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get persons: %w", err)
	}
	names := make(map[string]string, len(persons))
	for _, p := range persons {
		names[p.ID] = p.Name
	}

	if c.Person != "" {
		id, err := cli.ResolveAssignee(c.Person, persons)
		if err != nil {
			return err
		}
		var filtered []models.Task
		for _, t := range tasks {
			if t.AssignedTo == id {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	headers := []string{"Name", "Duration", "Priority", "Assigned", "Recurrence", "Time", "Days"}
	if c.ShowIDs {
		headers = append([]string{"ID"}, headers...)
	}
	if c.All {
		headers = append(headers, "Status")
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		assigned := "Everyone"
		if !t.IsShared() {
			assigned = names[t.AssignedTo]
			if assigned == "" {
				assigned = t.AssignedTo + " (unknown)"
			}
		}
		row := []string{
			cli.Swatch(t.Color, t.Name),
			strconv.Itoa(t.DurationMin) + "m",
			t.Priority.String(),
			assigned,
			string(t.Recurrence),
			string(t.TimePreference),
			cli.FormatDays(t.PreferredDays),
		}
		if c.ShowIDs {
			row = append([]string{t.ID}, row...)
		}
		if c.All {
			status := "active"
			if t.DeletedAt != nil {
				status = "deleted"
			}
			row = append(row, status)
		}
		rows = append(rows, row)
	}

	fmt.Println(cli.Table(headers, rows))
	return nil
}
