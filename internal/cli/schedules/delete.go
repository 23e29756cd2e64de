package schedules

import (
	"fmt"

	"github.com/julianstephens/hearth/internal/cli"
)

type DeleteCmd struct {
	Period string `arg:"" help:"Period of the schedule (week|month)."`
	Start  string `arg:"" help:"Any date inside the period (YYYY-MM-DD)."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	period, start, err := resolve(ctx, c.Period, c.Start)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteSchedule(period, start); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	fmt.Printf("Deleted %s schedule starting %s\n", period, start)
	return nil
}

type RestoreCmd struct {
	Period string `arg:"" help:"Period of the schedule (week|month)."`
	Start  string `arg:"" help:"Any date inside the period (YYYY-MM-DD)."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	period, start, err := resolve(ctx, c.Period, c.Start)
	if err != nil {
		return err
	}

	if err := ctx.Store.RestoreSchedule(period, start); err != nil {
		return fmt.Errorf("failed to restore schedule: %w", err)
	}

	fmt.Printf("Restored %s schedule starting %s\n", period, start)
	return nil
}
