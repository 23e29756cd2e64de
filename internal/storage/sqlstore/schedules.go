package sqlstore

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/export"
	"github.com/julianstephens/hearth/internal/models"
)

func scheduleKey(period constants.PeriodKind, startDate string) string {
	return fmt.Sprintf("%s %s", period, startDate)
}

// SaveSchedule stores rec under its period and first date. Saving over an
// existing schedule replaces it, clears any deletion and bumps the revision.
// It returns the stored revision.
func (s *Store) SaveSchedule(rec export.Record) (int, error) {
	period, start := rec.Schedule.Period, rec.Schedule.StartDate
	if period == "" || start == "" {
		return 0, errors.New("schedule has no period or start date")
	}

	data, err := export.Marshal(rec, export.FormatJSON, nil)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var revision int
	err = tx.QueryRow(s.q("SELECT revision FROM schedules WHERE period = ? AND start_date = ?"), string(period), start).Scan(&revision)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		revision = 1
		_, err = tx.Exec(s.q(`
			INSERT INTO schedules (period, start_date, record_id, revision, placed, total, success_rate, record, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			string(period), start, rec.ID, revision, rec.Stats.Placed, rec.Stats.TotalTasks, rec.Stats.SuccessRate, string(data), now())
	case err == nil:
		revision++
		_, err = tx.Exec(s.q(`
			UPDATE schedules SET record_id = ?, revision = ?, placed = ?, total = ?, success_rate = ?,
			                     record = ?, created_at = ?, deleted_at = NULL
			WHERE period = ? AND start_date = ?`),
			rec.ID, revision, rec.Stats.Placed, rec.Stats.TotalTasks, rec.Stats.SuccessRate, string(data), now(),
			string(period), start)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to save schedule %s: %w", scheduleKey(period, start), err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return revision, nil
}

func (s *Store) GetSchedule(period constants.PeriodKind, startDate string) (export.Record, error) {
	var data string
	err := s.db.QueryRow(s.q("SELECT record FROM schedules WHERE period = ? AND start_date = ? AND deleted_at IS NULL"),
		string(period), startDate).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return export.Record{}, notFound("schedule", scheduleKey(period, startDate))
		}
		return export.Record{}, err
	}

	rec, err := export.Decode(bytes.NewReader([]byte(data)), export.FormatJSON)
	if err != nil {
		return export.Record{}, fmt.Errorf("stored schedule %s is corrupt: %w", scheduleKey(period, startDate), err)
	}
	return rec, nil
}

// ListSchedules returns summaries of active schedules ordered by start date.
func (s *Store) ListSchedules() ([]models.ScheduleSummary, error) {
	rows, err := s.db.Query(`
		SELECT period, start_date, record_id, revision, placed, total, success_rate, created_at
		FROM schedules WHERE deleted_at IS NULL
		ORDER BY start_date, period`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScheduleSummary
	for rows.Next() {
		var sum models.ScheduleSummary
		var period string
		if err := rows.Scan(&period, &sum.StartDate, &sum.RecordID, &sum.Revision, &sum.Placed, &sum.Total, &sum.SuccessRate, &sum.CreatedAt); err != nil {
			return nil, err
		}
		sum.Period = constants.PeriodKind(period)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *Store) DeleteSchedule(period constants.PeriodKind, startDate string) error {
	return s.setScheduleDeleted(period, startDate, true)
}

func (s *Store) RestoreSchedule(period constants.PeriodKind, startDate string) error {
	return s.setScheduleDeleted(period, startDate, false)
}

func (s *Store) setScheduleDeleted(period constants.PeriodKind, startDate string, deleted bool) error {
	key := scheduleKey(period, startDate)

	var deletedAt sql.NullString
	err := s.db.QueryRow(s.q("SELECT deleted_at FROM schedules WHERE period = ? AND start_date = ?"), string(period), startDate).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("schedule", key)
		}
		return fmt.Errorf("failed to check schedule existence: %w", err)
	}

	if deleted {
		if deletedAt.Valid {
			return fmt.Errorf("schedule %s is already deleted", key)
		}
		_, err = s.db.Exec(s.q("UPDATE schedules SET deleted_at = ? WHERE period = ? AND start_date = ?"), now(), string(period), startDate)
		return err
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a schedule that is not deleted: %s", key)
	}
	_, err = s.db.Exec(s.q("UPDATE schedules SET deleted_at = NULL WHERE period = ? AND start_date = ?"), string(period), startDate)
	return err
}
