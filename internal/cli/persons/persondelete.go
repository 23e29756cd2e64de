package persons

import (
	"fmt"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/constants"
)

type PersonDeleteCmd struct {
	ID string `arg:"" help:"Person ID to delete."`
}

func (c *PersonDeleteCmd) Run(ctx *cli.Context) error {
	person, err := ctx.Store.GetPerson(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find person with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeletePerson(c.ID); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	fmt.Printf("Deleted person: %s (ID: %s)\n", person.Name, c.ID)

	// Tasks keep their assignment so a restore brings them back unchanged.
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return nil
	}
	orphaned := 0
	for _, t := range tasks {
		if t.AssignedTo == c.ID {
			orphaned++
		}
	}
	if orphaned > 0 {
		fmt.Printf("%d task(s) are still assigned to %s and will not be scheduled. Reassign them with '%s task edit ID --assign'.\n",
			orphaned, person.Name, constants.AppName)
	}
	return nil
}

type PersonRestoreCmd struct {
	ID string `arg:"" help:"Person ID to restore."`
}

func (c *PersonRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestorePerson(c.ID); err != nil {
		return fmt.Errorf("failed to restore person: %w", err)
	}

	fmt.Printf("Restored person with ID: %s\n", c.ID)
	return nil
}
