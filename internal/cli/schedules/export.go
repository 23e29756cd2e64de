package schedules

import (
	"fmt"
	"os"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/export"
)

type ExportCmd struct {
	Period string `arg:"" help:"Period of the schedule (week|month)."`
	Start  string `arg:"" help:"Any date inside the period (YYYY-MM-DD or 'today')."`
	Format string `help:"Export format (json|yaml|ics)." default:"json"`
	Out    string `help:"Output file; '-' writes to stdout. Defaults to hearth-<period>-<start>.<ext>."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	rec, err := loadSchedule(ctx, c.Period, c.Start)
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.Out == "-" {
		loc, err := cli.Location(settings.Timezone)
		if err != nil {
			return err
		}
		return export.Encode(os.Stdout, rec, f, loc)
	}

	out := c.Out
	if out == "" {
		out = export.Filename(rec.Schedule.Period, rec.Schedule.StartDate, f)
	}
	return writeExport(out, string(f), rec, settings)
}
