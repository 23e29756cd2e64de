package tasks

import (
	"errors"
	"fmt"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/storage"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task: %s (ID: %s)\n", task.Name, c.ID)
	fmt.Printf("Saved schedules still list it until regenerated with '%s generate --save'.\n", constants.AppName)
	return nil
}

type TaskRestoreCmd struct {
	ID string `arg:"" help:"Task ID to restore."`
}

func (c *TaskRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreTask(c.ID); err != nil {
		return fmt.Errorf("failed to restore task: %w", err)
	}

	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to read restored task: %w", err)
	}
	fmt.Printf("Restored task: %s (ID: %s)\n", task.Name, c.ID)

	if task.IsShared() {
		return nil
	}
	if _, err := ctx.Store.GetPerson(task.AssignedTo); errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("Warning: assignee %s no longer exists; the task will not be scheduled until reassigned.\n", task.AssignedTo)
	}
	return nil
}
