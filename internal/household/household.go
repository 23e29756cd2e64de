// Package household reads and writes household description files: the persons,
// tasks and generation settings of one home, in YAML or JSON.
package household

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/hearth/internal/models"
)

// File is the on-disk household description.
type File struct {
	Config  models.GenerationConfig `yaml:"config" json:"config"`
	Persons []models.Person         `yaml:"persons" json:"persons"`
	Tasks   []models.Task           `yaml:"tasks" json:"tasks"`
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load reads a household file. Files ending in .json are parsed as JSON, anything else as YAML.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("household path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read household file: %w", err)
	}

	var f File
	if isJSON(path) {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	f.Resolve()
	return &f, nil
}

// Save writes f to path atomically, creating parent directories.
func Save(path string, f *File) error {
	if path == "" {
		return errors.New("household path is empty")
	}
	if f == nil {
		return errors.New("household is nil")
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(f, "", "  ")
	} else {
		data, err = yaml.Marshal(f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode household: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".hearth-household-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write household: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}

// Resolve assigns missing ids and lets tasks name their assignee by person name
// instead of id. Person ids default to the lowercased name.
func (f *File) Resolve() {
	byName := make(map[string]string, len(f.Persons))
	for i := range f.Persons {
		p := &f.Persons[i]
		if p.ID == "" {
			p.ID = slug(p.Name)
			if models.IsReservedID(p.ID) {
				p.ID += "-person"
			}
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		byName[strings.ToLower(strings.TrimSpace(p.Name))] = p.ID
	}

	for i := range f.Tasks {
		t := &f.Tasks[i]
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if id, ok := byName[strings.ToLower(strings.TrimSpace(t.AssignedTo))]; ok {
			t.AssignedTo = id
		}
	}
}

// Normalized returns the generation inputs with every default applied.
// startDate, when set, overrides the file's start date.
func (f *File) Normalized(startDate string) (models.GenerationConfig, []models.Person, []models.Task) {
	cfg := f.Config
	if startDate != "" {
		cfg.StartDate = startDate
	}
	return models.Normalize(cfg, f.Persons, f.Tasks)
}

func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	dash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
