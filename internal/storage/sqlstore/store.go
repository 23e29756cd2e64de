// Package sqlstore implements hearth storage on database/sql. The sqlite and
// postgres providers share it and differ only in how they open the database.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/migration"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/migrations"
)

type Store struct {
	db      *sql.DB
	dialect migration.Dialect
}

func New(db *sql.DB, dialect migration.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) q(query string) string {
	return s.dialect.Rebind(query)
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, s.dialect.String())
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", s.dialect, err)
	}
	return migration.NewRunner(s.db, s.dialect, sub), nil
}

// Migrate applies pending schema migrations.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

// ValidateSchema fails when the database was written by a newer hearth.
func (s *Store) ValidateSchema() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

// SchemaVersion returns the current and latest known schema versions.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

// Setup migrates the schema and writes default settings on first use.
func (s *Store) Setup() error {
	if _, err := s.Migrate(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if count == 0 {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(data string) []string {
	if data == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil || len(values) == 0 {
		return nil
	}
	return values
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s with id %s: %w", kind, id, models.ErrNotFound)
}

// softDelete marks a row deleted. kind names the record in errors.
func (s *Store) softDelete(table, kind, id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(s.q("SELECT deleted_at FROM "+table+" WHERE id = ?"), id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(kind, id)
		}
		return fmt.Errorf("failed to check %s existence: %w", kind, err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("%s with id %s is already deleted", kind, id)
	}

	_, err = s.db.Exec(s.q("UPDATE "+table+" SET deleted_at = ? WHERE id = ?"), now(), id)
	return err
}

func (s *Store) restore(table, kind, id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(s.q("SELECT deleted_at FROM "+table+" WHERE id = ?"), id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(kind, id)
		}
		return fmt.Errorf("failed to check %s existence: %w", kind, err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a %s that is not deleted: %s", kind, id)
	}

	_, err = s.db.Exec(s.q("UPDATE "+table+" SET deleted_at = NULL WHERE id = ?"), id)
	return err
}
