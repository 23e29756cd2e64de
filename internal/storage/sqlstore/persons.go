package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/hearth/internal/models"
)

const personColumns = "id, name, color, days_off, constraints, deleted_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (models.Person, error) {
	var p models.Person
	var daysOff string
	var deletedAt sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Color, &daysOff, &p.Constraints, &deletedAt); err != nil {
		return models.Person{}, err
	}
	p.DaysOff = decodeList(daysOff)
	if deletedAt.Valid {
		p.DeletedAt = &deletedAt.String
	}
	return p, nil
}

// AddPerson inserts p after every existing person.
func (s *Store) AddPerson(p models.Person) error {
	if p.ID == "" {
		return errors.New("person id is empty")
	}
	daysOff, err := encodeList(p.DaysOff)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(s.q(`
		INSERT INTO persons (id, name, color, days_off, constraints, position)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM persons))`),
		p.ID, p.Name, p.Color, daysOff, p.Constraints)
	if err != nil {
		return fmt.Errorf("failed to add person %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) GetPerson(id string) (models.Person, error) {
	row := s.db.QueryRow(s.q("SELECT "+personColumns+" FROM persons WHERE id = ? AND deleted_at IS NULL"), id)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Person{}, notFound("person", id)
		}
		return models.Person{}, err
	}
	return p, nil
}

// GetAllPersons returns active persons in the order they were added.
func (s *Store) GetAllPersons() ([]models.Person, error) {
	return s.queryPersons("SELECT " + personColumns + " FROM persons WHERE deleted_at IS NULL ORDER BY position, id")
}

func (s *Store) GetAllPersonsIncludingDeleted() ([]models.Person, error) {
	return s.queryPersons("SELECT " + personColumns + " FROM persons ORDER BY position, id")
}

func (s *Store) queryPersons(query string) ([]models.Person, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (s *Store) UpdatePerson(p models.Person) error {
	daysOff, err := encodeList(p.DaysOff)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(s.q(`
		UPDATE persons SET name = ?, color = ?, days_off = ?, constraints = ?
		WHERE id = ? AND deleted_at IS NULL`),
		p.Name, p.Color, daysOff, p.Constraints, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update person %s: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("person", p.ID)
	}
	return nil
}

func (s *Store) DeletePerson(id string) error {
	return s.softDelete("persons", "person", id)
}

func (s *Store) RestorePerson(id string) error {
	return s.restore("persons", "person", id)
}
