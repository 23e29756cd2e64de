package schedules

import (
	"fmt"
	"os"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/export"
)

type ShowCmd struct {
	Period string `arg:"" help:"Period of the schedule (week|month)."`
	Start  string `arg:"" optional:"" help:"Any date inside the period (YYYY-MM-DD or 'today')." default:"today"`
	Person string `help:"Only show this person's column (ID or name)."`
	All    bool   `help:"Show days without entries."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	rec, err := loadSchedule(ctx, c.Period, c.Start)
	if err != nil {
		return err
	}

	cli.RenderSchedule(os.Stdout, rec, cli.RenderOptions{Person: c.Person, SkipEmpty: !c.All})
	fmt.Println()
	cli.RenderStats(os.Stdout, rec.Stats)
	fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("Generated %s by %s", rec.ExportedAt, rec.App)))
	return nil
}

// loadSchedule resolves a period and a date inside it to the stored schedule.
func loadSchedule(ctx *cli.Context, periodArg, date string) (export.Record, error) {
	period, start, err := resolve(ctx, periodArg, date)
	if err != nil {
		return export.Record{}, err
	}
	rec, err := ctx.Store.GetSchedule(period, start)
	if err != nil {
		return export.Record{}, fmt.Errorf("failed to get %s schedule starting %s: %w", period, start, err)
	}
	return rec, nil
}

func resolve(ctx *cli.Context, periodArg, date string) (constants.PeriodKind, string, error) {
	period, err := cli.ParsePeriod(periodArg, constants.DefaultPeriod)
	if err != nil {
		return "", "", err
	}
	start, err := ctx.PeriodStart(period, date)
	if err != nil {
		return "", "", err
	}
	return period, start, nil
}
