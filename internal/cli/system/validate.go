package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/household"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/validation"
)

// ErrValidationFailed is returned when the report contains errors.
var ErrValidationFailed = errors.New("validation found errors")

type ValidateCmd struct {
	File string `short:"f" help:"Validate a household YAML/JSON file instead of storage." type:"existingfile"`
	Fix  bool   `help:"Delete duplicate tasks, keeping one per name."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var (
		persons []models.Person
		tasks   []models.Task
	)
	if c.File != "" {
		f, err := household.Load(c.File)
		if err != nil {
			return err
		}
		persons, tasks = f.Persons, f.Tasks
		if c.Fix {
			return fmt.Errorf("--fix only applies to stored tasks")
		}
	} else {
		if persons, err = ctx.Store.GetAllPersons(); err != nil {
			return fmt.Errorf("failed to get persons: %w", err)
		}
		if tasks, err = ctx.Store.GetAllTasks(); err != nil {
			return fmt.Errorf("failed to get tasks: %w", err)
		}
	}

	result := validation.New().Validate(settings, persons, tasks)
	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
	}

	if c.Fix && result.HasConflicts() {
		actions := validation.AutoFixDuplicateTasks(result.Conflicts, tasks, ctx.Store.DeleteTask)
		for _, a := range actions {
			fmt.Printf("  fixed: %s\n", a.Action)
		}
		if len(actions) > 0 {
			// Re-validate what is left.
			if tasks, err = ctx.Store.GetAllTasks(); err != nil {
				return fmt.Errorf("failed to get tasks: %w", err)
			}
			result = validation.New().Validate(settings, persons, tasks)
		}
	}

	if result.HasErrors() {
		return ErrValidationFailed
	}
	return nil
}
