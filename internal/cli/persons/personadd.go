package persons

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/storage"
)

type PersonAddCmd struct {
	Name        string `arg:"" help:"Person name."`
	ID          string `help:"Explicit person ID (default: generated)."`
	Color       string `short:"c" help:"Display color (hex, e.g. #3b82f6)."`
	DaysOff     string `short:"o" name:"days-off" help:"Comma-separated days off (e.g. samedi,dimanche or sat,sun)."`
	Constraints string `help:"Free-form note about the person's availability."`
}

func (c *PersonAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

func (c *PersonAddCmd) Run(ctx *cli.Context) error {
	daysOff, err := cli.ParseDays(c.DaysOff)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(c.ID)
	if id == "" {
		id = uuid.New().String()
	} else if models.IsReservedID(id) {
		return fmt.Errorf("person ID %q is reserved for tasks shared by the whole household", id)
	} else if _, err := ctx.Store.GetPerson(id); err == nil {
		return fmt.Errorf("person with ID %s already exists", id)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check person ID: %w", err)
	}

	existing, err := ctx.Store.GetAllPersons()
	if err != nil {
		return fmt.Errorf("failed to get persons: %w", err)
	}

	person := models.NormalizePerson(models.Person{
		ID:          id,
		Name:        strings.TrimSpace(c.Name),
		Color:       c.Color,
		DaysOff:     daysOff,
		Constraints: c.Constraints,
	}, len(existing))

	if err := ctx.Store.AddPerson(person); err != nil {
		return err
	}

	fmt.Printf("Added person: %s (ID: %s)\n", person.Name, person.ID)
	return nil
}
