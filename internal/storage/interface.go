// Package storage defines the persistence contract for a household and picks a
// provider from a config path or connection string.
package storage

import (
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/export"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/storage/jsonstore"
	"github.com/julianstephens/hearth/internal/storage/postgres"
	"github.com/julianstephens/hearth/internal/storage/sqlite"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Persons
	AddPerson(models.Person) error
	GetPerson(id string) (models.Person, error)
	GetAllPersons() ([]models.Person, error)
	GetAllPersonsIncludingDeleted() ([]models.Person, error)
	UpdatePerson(models.Person) error
	DeletePerson(id string) error
	RestorePerson(id string) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetAllTasksIncludingDeleted() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Schedules are keyed by period and the first date of the period.
	// SaveSchedule returns the stored revision.
	SaveSchedule(export.Record) (int, error)
	GetSchedule(period constants.PeriodKind, startDate string) (export.Record, error)
	ListSchedules() ([]models.ScheduleSummary, error)
	DeleteSchedule(period constants.PeriodKind, startDate string) error
	RestoreSchedule(period constants.PeriodKind, startDate string) error

	// Utils
	GetConfigPath() string
}

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*jsonstore.Store)(nil)
)

// ErrNotFound is wrapped by every provider for missing or deleted records.
var ErrNotFound = models.ErrNotFound
