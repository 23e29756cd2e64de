package persons

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hearth/internal/cli"
)

type PersonEditCmd struct {
	ID          string  `arg:"" help:"Person ID."`
	Name        *string `help:"New name."`
	Color       *string `short:"c" help:"New display color."`
	DaysOff     *string `short:"o" name:"days-off" help:"New comma-separated days off (empty string clears them)."`
	Constraints *string `help:"New availability note."`
}

func (c *PersonEditCmd) Run(ctx *cli.Context) error {
	person, err := ctx.Store.GetPerson(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find person: %w", err)
	}

	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return fmt.Errorf("name cannot be empty")
		}
		person.Name = name
	}
	if c.Color != nil {
		person.Color = *c.Color
	}
	if c.DaysOff != nil {
		days, err := cli.ParseDays(*c.DaysOff)
		if err != nil {
			return err
		}
		person.DaysOff = days
	}
	if c.Constraints != nil {
		person.Constraints = *c.Constraints
	}

	if err := ctx.Store.UpdatePerson(person); err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	fmt.Printf("Person updated: %s\n", person.Name)
	return nil
}
