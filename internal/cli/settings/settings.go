package settings

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/validation"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Println(cli.Table([]string{"Setting", "Value"}, [][]string{
		{"Work start", settings.WorkStart},
		{"Work end", settings.WorkEnd},
		{"Lunch start", settings.LunchStart},
		{"Lunch end", settings.LunchEnd},
		{"Slot length", strconv.Itoa(settings.SlotMin) + " min"},
		{"Default period", string(settings.Period)},
		{"Timezone", settings.Timezone},
	}))
	return nil
}

type SetCmd struct {
	WorkStart  *string `help:"Start of the working day (HH:MM)."`
	WorkEnd    *string `help:"End of the working day (HH:MM)."`
	LunchStart *string `help:"Start of the lunch break (HH:MM)."`
	LunchEnd   *string `help:"End of the lunch break (HH:MM)."`
	SlotMin    *int    `help:"Slot length in minutes."`
	Period     *string `help:"Default period for generate (week|month)."`
	Timezone   *string `help:"IANA timezone for calendar exports, or 'Local'."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := c.apply(&settings)
	if !updated {
		fmt.Println("No changes specified. Use 'hearth settings show' to view settings or flags to update them.")
		return nil
	}

	if c.Period != nil {
		if settings.Period, err = cli.ParsePeriod(*c.Period, ""); err != nil {
			return err
		}
	}
	if c.Timezone != nil {
		if _, err := cli.Location(settings.Timezone); err != nil {
			return err
		}
	}

	result := validation.New().ValidateSettings(settings)
	if result.HasErrors() {
		return fmt.Errorf("settings rejected:\n%s", result.FormatReport())
	}
	if result.HasConflicts() {
		fmt.Print(result.FormatReport())
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func (c *SetCmd) apply(s *models.Settings) bool {
	updated := false
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
			updated = true
		}
	}
	set(&s.WorkStart, c.WorkStart)
	set(&s.WorkEnd, c.WorkEnd)
	set(&s.LunchStart, c.LunchStart)
	set(&s.LunchEnd, c.LunchEnd)
	set(&s.Timezone, c.Timezone)
	if c.SlotMin != nil {
		s.SlotMin = *c.SlotMin
		updated = true
	}
	if c.Period != nil {
		updated = true
	}
	return updated
}
