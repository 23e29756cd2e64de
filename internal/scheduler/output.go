package scheduler

import (
	"math"
	"sort"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

// convert flattens the grid into week groups and computes the run statistics.
// TotalTasks counts input tasks, not daily occurrences.
func convert(g *Grid, tasks []models.Task, o *outcome) (models.Schedule, models.PlacementStats) {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		if _, seen := byID[t.ID]; !seen {
			byID[t.ID] = t
		}
	}

	schedule := models.Schedule{
		Period:    g.Period,
		StartDate: g.Start.Format(constants.DateFormat),
		Weeks:     []models.Week{},
	}
	if len(g.Days) > 0 {
		schedule.StartDate = g.Days[0].Date.Format(constants.DateFormat)
		schedule.EndDate = g.Days[len(g.Days)-1].Date.Format(constants.DateFormat)
	}

	weekIndex := make(map[[2]int]int)
	for _, day := range g.Days {
		ds := models.DaySchedule{
			Date:    day.Date.Format(constants.DateFormat),
			Weekday: day.Weekday,
			Entries: []models.Entry{},
		}
		for _, key := range day.Order {
			col := day.Columns[key]
			for _, slot := range col.Slots {
				if slot.TaskID == "" {
					continue
				}
				task := byID[slot.TaskID]
				ds.Entries = append(ds.Entries, models.Entry{
					Date:     ds.Date,
					Weekday:  day.Weekday,
					Start:    models.FormatClock(slot.Start),
					End:      models.FormatClock(slot.End),
					TaskID:   slot.TaskID,
					TaskName: task.Name,
					Color:    task.Color,
					Column:   key,
					Shared:   task.IsShared(),
				})
			}
		}

		wk := [2]int{day.ISOYear, day.ISOWeek}
		idx, ok := weekIndex[wk]
		if !ok {
			idx = len(schedule.Weeks)
			weekIndex[wk] = idx
			schedule.Weeks = append(schedule.Weeks, models.Week{Year: day.ISOYear, Number: day.ISOWeek})
		}
		schedule.Weeks[idx].Days = append(schedule.Weeks[idx].Days, ds)
	}

	sort.SliceStable(schedule.Weeks, func(i, j int) bool {
		if schedule.Weeks[i].Year != schedule.Weeks[j].Year {
			return schedule.Weeks[i].Year < schedule.Weeks[j].Year
		}
		return schedule.Weeks[i].Number < schedule.Weeks[j].Number
	})

	return schedule, buildStats(tasks, o)
}

func buildStats(tasks []models.Task, o *outcome) models.PlacementStats {
	stats := models.PlacementStats{
		TotalTasks:  len(tasks),
		Failed:      len(o.failures),
		Occurrences: len(o.placements),
		Placements:  append([]models.Placement{}, o.placements...),
		Failures:    append([]models.Failure{}, o.failures...),
	}

	seen := make(map[string]bool)
	for _, t := range tasks {
		if o.counts[t.ID] > 0 && !seen[t.ID] {
			seen[t.ID] = true
			stats.Placed++
		}
	}
	stats.SuccessRate = SuccessRate(stats.Placed, stats.TotalTasks)
	return stats
}

// SuccessRate returns placed/total as a rounded percentage, or 0 when total is 0.
func SuccessRate(placed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(placed) / float64(total) * 100))
}
