package persons

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hearth/internal/cli"
)

type PersonListCmd struct {
	All     bool `short:"a" help:"Include deleted persons."`
	ShowIDs bool `help:"Show person IDs." name:"show-ids"`
}

func (c *PersonListCmd) Run(ctx *cli.Context) error {
	persons, err := ctx.Store.GetAllPersons()
	if c.All {
		persons, err = ctx.Store.GetAllPersonsIncludingDeleted()
	}
	if err != nil {
		return fmt.Errorf("failed to get persons: %w", err)
	}
	if len(persons) == 0 {
		fmt.Println("No persons found. Add one with 'hearth person add NAME'.")
		return nil
	}

	headers := []string{"Name", "Days off", "Constraints"}
	if c.ShowIDs {
		headers = append([]string{"ID"}, headers...)
	}
	if c.All {
		headers = append(headers, "Status")
	}

	rows := make([][]string, 0, len(persons))
	for _, p := range persons {
		row := []string{cli.Swatch(p.Color, p.Name), cli.FormatDays(p.DaysOff), strings.TrimSpace(p.Constraints)}
		if c.ShowIDs {
			row = append([]string{p.ID}, row...)
		}
		if c.All {
			status := "active"
			if p.DeletedAt != nil {
				status = "deleted"
			}
			row = append(row, status)
		}
		rows = append(rows, row)
	}

	fmt.Println(cli.Table(headers, rows))
	return nil
}
