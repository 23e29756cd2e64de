package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
)

// ErrInvalidInput is wrapped by every error that aborts a generation run.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the input that made a run impossible.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Scheduler runs generation. It holds no state between runs, so one value may be
// shared by every caller.
type Scheduler struct{}

// New returns a Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Generate lays tasks out on a grid for the configured period. Inputs are expected
// to be normalized already (see models.Normalize); tasks with blank names are ignored.
//
// Unplaceable tasks are reported in the returned stats, never as an error. The only
// errors are an empty person list, an empty task list, ambiguous ids and an unusable
// config. Person ids must be unique and must not be a reserved household key
// (see models.IsReservedID); task ids must be unique.
func (s *Scheduler) Generate(cfg models.GenerationConfig, persons []models.Person, tasks []models.Task) (models.Schedule, models.PlacementStats, error) {
	if len(persons) == 0 {
		return models.Schedule{}, models.PlacementStats{}, &InputError{Field: "persons", Reason: "at least one person is required"}
	}

	named := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.Name) != "" {
			named = append(named, t)
		}
	}
	if len(named) == 0 {
		return models.Schedule{}, models.PlacementStats{}, &InputError{Field: "tasks", Reason: "at least one named task is required"}
	}
	if err := checkIDs(persons, named); err != nil {
		return models.Schedule{}, models.PlacementStats{}, err
	}

	grid, err := BuildGrid(cfg, persons)
	if err != nil {
		return models.Schedule{}, models.PlacementStats{}, &InputError{Field: "config", Reason: err.Error()}
	}

	log := logger.With("component", "scheduler", "period", cfg.Period, "start", cfg.StartDate)
	if log != nil {
		log.Debug("grid built", "days", len(grid.Days), "slots_per_column", len(grid.Template), "persons", len(persons))
	}

	e := &engine{grid: grid, out: newOutcome(), log: log}
	e.run(named)

	schedule, stats := convert(grid, named, e.out)
	if log != nil {
		log.Debug("generation finished",
			"tasks", stats.TotalTasks,
			"placed", stats.Placed,
			"failed", stats.Failed,
			"success_rate", stats.SuccessRate,
		)
	}
	return schedule, stats, nil
}

// checkIDs rejects ids the grid and the placement counters cannot tell apart.
func checkIDs(persons []models.Person, tasks []models.Task) error {
	seen := make(map[string]bool, len(persons))
	for _, p := range persons {
		if models.IsReservedID(p.ID) {
			return &InputError{Field: "persons", Reason: fmt.Sprintf("person id %q is reserved for the whole household", p.ID)}
		}
		if seen[p.ID] {
			return &InputError{Field: "persons", Reason: fmt.Sprintf("duplicate person id %q", p.ID)}
		}
		seen[p.ID] = true
	}

	seen = make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return &InputError{Field: "tasks", Reason: fmt.Sprintf("duplicate task id %q", t.ID)}
		}
		seen[t.ID] = true
	}
	return nil
}
