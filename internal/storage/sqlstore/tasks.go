package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

const taskColumns = `id, name, duration_min, priority, assigned_to, recurrence, color,
	preferred_days, time_preference, deleted_at`

func scanTask(row scanner) (models.Task, error) {
	var t models.Task
	var priority int
	var recurrence, preferredDays, timePref string
	var deletedAt sql.NullString

	err := row.Scan(&t.ID, &t.Name, &t.DurationMin, &priority, &t.AssignedTo, &recurrence, &t.Color,
		&preferredDays, &timePref, &deletedAt)
	if err != nil {
		return models.Task{}, err
	}

	t.Priority = constants.Priority(priority)
	t.Recurrence = constants.RecurrenceType(recurrence)
	t.TimePreference = constants.TimePreference(timePref)
	t.PreferredDays = decodeList(preferredDays)
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}
	return t, nil
}

func (s *Store) AddTask(t models.Task) error {
	if t.ID == "" {
		return errors.New("task id is empty")
	}
	preferred, err := encodeList(t.PreferredDays)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(s.q(`
		INSERT INTO tasks (id, name, duration_min, priority, assigned_to, recurrence, color,
		                   preferred_days, time_preference, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM tasks))`),
		t.ID, t.Name, t.DurationMin, int(t.Priority), t.AssignedTo, string(t.Recurrence), t.Color,
		preferred, string(t.TimePreference))
	if err != nil {
		return fmt.Errorf("failed to add task %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(s.q("SELECT "+taskColumns+" FROM tasks WHERE id = ? AND deleted_at IS NULL"), id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, notFound("task", id)
		}
		return models.Task{}, err
	}
	return t, nil
}

// GetAllTasks returns active tasks in insertion order, which is also the
// tie-break order of the scheduler's sort.
func (s *Store) GetAllTasks() ([]models.Task, error) {
	return s.queryTasks("SELECT " + taskColumns + " FROM tasks WHERE deleted_at IS NULL ORDER BY position, id")
}

func (s *Store) GetAllTasksIncludingDeleted() ([]models.Task, error) {
	return s.queryTasks("SELECT " + taskColumns + " FROM tasks ORDER BY position, id")
}

func (s *Store) queryTasks(query string) ([]models.Task, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(t models.Task) error {
	preferred, err := encodeList(t.PreferredDays)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(s.q(`
		UPDATE tasks SET name = ?, duration_min = ?, priority = ?, assigned_to = ?, recurrence = ?,
		                 color = ?, preferred_days = ?, time_preference = ?
		WHERE id = ? AND deleted_at IS NULL`),
		t.Name, t.DurationMin, int(t.Priority), t.AssignedTo, string(t.Recurrence),
		t.Color, preferred, string(t.TimePreference), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", t.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("task", t.ID)
	}
	return nil
}

func (s *Store) DeleteTask(id string) error {
	return s.softDelete("tasks", "task", id)
}

func (s *Store) RestoreTask(id string) error {
	return s.restore("tasks", "task", id)
}
