// Package jsonstore keeps the whole household in a single JSON file.
//
// Store is not safe for concurrent use, and running several hearth processes
// against the same file may lose writes.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/export"
	"github.com/julianstephens/hearth/internal/models"
)

const documentVersion = 1

type storedSchedule struct {
	Summary models.ScheduleSummary `json:"summary"`
	Record  export.Record          `json:"record"`
}

type document struct {
	Version   int              `json:"version"`
	Settings  models.Settings  `json:"settings"`
	Persons   []models.Person  `json:"persons"`
	Tasks     []models.Task    `json:"tasks"`
	Schedules []storedSchedule `json:"schedules"`
}

type Store struct {
	path string
	doc  *document
}

func New(path string) *Store {
	return &Store{path: path}
}

var errNotLoaded = errors.New("storage not loaded")

// Init creates the file with default settings, or loads it when it already exists.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{
		Version:  documentVersion,
		Settings: models.DefaultSettings(),
	}
	return s.save()
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > documentVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, documentVersion)
	}
	models.ApplyDefaultSettings(&doc.Settings)
	s.doc = &doc
	return nil
}

func (s *Store) Close() error {
	s.doc = nil
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s with id %s: %w", kind, id, models.ErrNotFound)
}

func (s *Store) GetSettings() (models.Settings, error) {
	if s.doc == nil {
		return models.Settings{}, errNotLoaded
	}
	return s.doc.Settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if s.doc == nil {
		return errNotLoaded
	}
	s.doc.Settings = settings
	return s.save()
}

// Persons

func (s *Store) personIndex(id string) int {
	for i, p := range s.doc.Persons {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) AddPerson(p models.Person) error {
	if s.doc == nil {
		return errNotLoaded
	}
	if p.ID == "" {
		return errors.New("person id is empty")
	}
	if s.personIndex(p.ID) >= 0 {
		return fmt.Errorf("person with id %s already exists", p.ID)
	}
	p.DeletedAt = nil
	s.doc.Persons = append(s.doc.Persons, p)
	return s.save()
}

func (s *Store) GetPerson(id string) (models.Person, error) {
	if s.doc == nil {
		return models.Person{}, errNotLoaded
	}
	i := s.personIndex(id)
	if i < 0 || s.doc.Persons[i].DeletedAt != nil {
		return models.Person{}, notFound("person", id)
	}
	return s.doc.Persons[i], nil
}

func (s *Store) GetAllPersons() ([]models.Person, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	var out []models.Person
	for _, p := range s.doc.Persons {
		if p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) GetAllPersonsIncludingDeleted() ([]models.Person, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	return append([]models.Person(nil), s.doc.Persons...), nil
}

func (s *Store) UpdatePerson(p models.Person) error {
	if s.doc == nil {
		return errNotLoaded
	}
	i := s.personIndex(p.ID)
	if i < 0 || s.doc.Persons[i].DeletedAt != nil {
		return notFound("person", p.ID)
	}
	p.DeletedAt = nil
	s.doc.Persons[i] = p
	return s.save()
}

func (s *Store) DeletePerson(id string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	i := s.personIndex(id)
	if i < 0 {
		return notFound("person", id)
	}
	if s.doc.Persons[i].DeletedAt != nil {
		return fmt.Errorf("person with id %s is already deleted", id)
	}
	ts := now()
	s.doc.Persons[i].DeletedAt = &ts
	return s.save()
}

func (s *Store) RestorePerson(id string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	i := s.personIndex(id)
	if i < 0 {
		return notFound("person", id)
	}
	if s.doc.Persons[i].DeletedAt == nil {
		return fmt.Errorf("cannot restore a person that is not deleted: %s", id)
	}
	s.doc.Persons[i].DeletedAt = nil
	return s.save()
}

// Tasks

func (s *Store) taskIndex(id string) int {
	for i, t := range s.doc.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) AddTask(t models.Task) error {
	if s.doc == nil {
		return errNotLoaded
	}
	if t.ID == "" {
		return errors.New("task id is empty")
	}
	if s.taskIndex(t.ID) >= 0 {
		return fmt.Errorf("task with id %s already exists", t.ID)
	}
	t.DeletedAt = nil
	s.doc.Tasks = append(s.doc.Tasks, t)
	return s.save()
}

func (s *Store) GetTask(id string) (models.Task, error) {
	if s.doc == nil {
		return models.Task{}, errNotLoaded
	}
	i := s.taskIndex(id)
	if i < 0 || s.doc.Tasks[i].DeletedAt != nil {
		return models.Task{}, notFound("task", id)
	}
	return s.doc.Tasks[i], nil
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	var out []models.Task
	for _, t := range s.doc.Tasks {
		if t.DeletedAt == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) GetAllTasksIncludingDeleted() ([]models.Task, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	return append([]models.Task(nil), s.doc.Tasks...), nil
}

func (s *Store) UpdateTask(t models.Task) error {
	if s.doc == nil {
		return errNotLoaded
	}
	i := s.taskIndex(t.ID)
	if i < 0 || s.doc.Tasks[i].DeletedAt != nil {
		return notFound("task", t.ID)
	}
	t.DeletedAt = nil
	s.doc.Tasks[i] = t
	return s.save()
}

func (s *Store) DeleteTask(id string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	i := s.taskIndex(id)
	if i < 0 {
		return notFound("task", id)
	}
	if s.doc.Tasks[i].DeletedAt != nil {
		return fmt.Errorf("task with id %s is already deleted", id)
	}
	ts := now()
	s.doc.Tasks[i].DeletedAt = &ts
	return s.save()
}

func (s *Store) RestoreTask(id string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	i := s.taskIndex(id)
	if i < 0 {
		return notFound("task", id)
	}
	if s.doc.Tasks[i].DeletedAt == nil {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}
	s.doc.Tasks[i].DeletedAt = nil
	return s.save()
}

// Schedules

func (s *Store) scheduleIndex(period constants.PeriodKind, startDate string) int {
	for i, sc := range s.doc.Schedules {
		if sc.Summary.Period == period && sc.Summary.StartDate == startDate {
			return i
		}
	}
	return -1
}

// SaveSchedule replaces any schedule for the same period and first date and bumps its revision.
func (s *Store) SaveSchedule(rec export.Record) (int, error) {
	if s.doc == nil {
		return 0, errNotLoaded
	}
	period, start := rec.Schedule.Period, rec.Schedule.StartDate
	if period == "" || start == "" {
		return 0, errors.New("schedule has no period or start date")
	}

	sum := models.ScheduleSummary{
		Period:      period,
		StartDate:   start,
		RecordID:    rec.ID,
		Revision:    1,
		Placed:      rec.Stats.Placed,
		Total:       rec.Stats.TotalTasks,
		SuccessRate: rec.Stats.SuccessRate,
		CreatedAt:   now(),
	}

	if i := s.scheduleIndex(period, start); i >= 0 {
		sum.Revision = s.doc.Schedules[i].Summary.Revision + 1
		s.doc.Schedules[i] = storedSchedule{Summary: sum, Record: rec}
	} else {
		s.doc.Schedules = append(s.doc.Schedules, storedSchedule{Summary: sum, Record: rec})
	}
	if err := s.save(); err != nil {
		return 0, err
	}
	return sum.Revision, nil
}

func (s *Store) GetSchedule(period constants.PeriodKind, startDate string) (export.Record, error) {
	if s.doc == nil {
		return export.Record{}, errNotLoaded
	}
	i := s.scheduleIndex(period, startDate)
	if i < 0 || s.doc.Schedules[i].Summary.DeletedAt != nil {
		return export.Record{}, notFound("schedule", fmt.Sprintf("%s %s", period, startDate))
	}
	return s.doc.Schedules[i].Record, nil
}

func (s *Store) ListSchedules() ([]models.ScheduleSummary, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	var out []models.ScheduleSummary
	for _, sc := range s.doc.Schedules {
		if sc.Summary.DeletedAt == nil {
			out = append(out, sc.Summary)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].Period < out[j].Period
	})
	return out, nil
}

func (s *Store) DeleteSchedule(period constants.PeriodKind, startDate string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	key := fmt.Sprintf("%s %s", period, startDate)
	i := s.scheduleIndex(period, startDate)
	if i < 0 {
		return notFound("schedule", key)
	}
	if s.doc.Schedules[i].Summary.DeletedAt != nil {
		return fmt.Errorf("schedule %s is already deleted", key)
	}
	ts := now()
	s.doc.Schedules[i].Summary.DeletedAt = &ts
	return s.save()
}

func (s *Store) RestoreSchedule(period constants.PeriodKind, startDate string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	key := fmt.Sprintf("%s %s", period, startDate)
	i := s.scheduleIndex(period, startDate)
	if i < 0 {
		return notFound("schedule", key)
	}
	if s.doc.Schedules[i].Summary.DeletedAt == nil {
		return fmt.Errorf("cannot restore a schedule that is not deleted: %s", key)
	}
	s.doc.Schedules[i].Summary.DeletedAt = nil
	return s.save()
}
