package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hearth/internal/tui"
)

type TuiCmd struct {
	Period string `help:"Period to browse (week|month). Defaults to the stored setting."`
}

func (c *TuiCmd) Run(ctx *Context) error {
	period, err := ParsePeriod(c.Period, "")
	if err != nil {
		return err
	}

	model, err := tui.NewModel(ctx.Store, ctx.Scheduler, tui.Options{
		Period:     period,
		Today:      ctx.Today(),
		BeforeSave: ctx.PerformAutomaticBackup,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
