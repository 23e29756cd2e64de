package schedules

import (
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/hearth/internal/cli"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	summaries, err := ctx.Store.ListSchedules()
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No saved schedules. Generate one with 'hearth generate --save'.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		created := s.CreatedAt
		if t, err := time.Parse(time.RFC3339, s.CreatedAt); err == nil {
			created = t.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			string(s.Period),
			s.StartDate,
			strconv.Itoa(s.Revision),
			fmt.Sprintf("%d/%d", s.Placed, s.Total),
			strconv.Itoa(s.SuccessRate) + "%",
			created,
		})
	}

	fmt.Println(cli.Table([]string{"Period", "Start", "Revision", "Placed", "Success", "Saved"}, rows))
	return nil
}
