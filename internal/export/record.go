// Package export serializes generated schedules for other tools and for storage.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// Record is the versioned, self-describing result of one generation run.
type Record struct {
	FormatVersion int                     `json:"format_version" yaml:"format_version"`
	ID            string                  `json:"id" yaml:"id"`
	App           string                  `json:"app" yaml:"app"`
	ExportedAt    string                  `json:"exported_at" yaml:"exported_at"` // RFC3339
	Config        models.GenerationConfig `json:"config" yaml:"config"`
	Persons       []models.Person         `json:"persons" yaml:"persons"`
	Tasks         []models.Task           `json:"tasks" yaml:"tasks"`
	Schedule      models.Schedule         `json:"schedule" yaml:"schedule"`
	Stats         models.PlacementStats   `json:"stats" yaml:"stats"`
}

// NewRecord wraps a generation result with a fresh id and timestamp.
func NewRecord(cfg models.GenerationConfig, persons []models.Person, tasks []models.Task, schedule models.Schedule, stats models.PlacementStats) Record {
	return Record{
		FormatVersion: constants.ExportFormatVersion,
		ID:            uuid.New().String(),
		App:           fmt.Sprintf("%s %s", constants.AppName, constants.Version),
		ExportedAt:    time.Now().UTC().Format(time.RFC3339),
		Config:        cfg,
		Persons:       persons,
		Tasks:         tasks,
		Schedule:      schedule,
		Stats:         stats,
	}
}

// Check rejects records this version cannot read.
func (r Record) Check() error {
	if r.FormatVersion == 0 {
		return fmt.Errorf("missing format_version")
	}
	if r.FormatVersion > constants.ExportFormatVersion {
		return fmt.Errorf("unsupported format_version %d (newest supported is %d)", r.FormatVersion, constants.ExportFormatVersion)
	}
	return nil
}

// PersonName returns the display name for a column key.
func (r Record) PersonName(column string) string {
	if column == constants.ColumnCommon {
		return "Everyone"
	}
	for _, p := range r.Persons {
		if p.ID == column {
			return p.Name
		}
	}
	return column
}

// ParseFormat accepts a format name, case-insensitively. "yml" and "ical" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ics", "ical":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, yaml or ics)", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer export format from %q", path)
	}
	return ParseFormat(ext)
}

// Filename returns the conventional file name for a schedule export.
func Filename(period constants.PeriodKind, startDate string, f Format) string {
	return fmt.Sprintf("%s-%s-%s.%s", constants.AppName, period, startDate, f)
}
