package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Encode writes rec in format f. ICS output uses loc for wall-clock times.
func Encode(w io.Writer, rec Record, f Format, loc *time.Location) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatICS:
		return EncodeICS(w, rec, loc)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// Decode reads a JSON or YAML record. Calendars carry no full record; use DecodeICS.
func Decode(r io.Reader, f Format) (Record, error) {
	var rec Record
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&rec); err != nil {
			return Record{}, fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&rec); err != nil {
			return Record{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case FormatICS:
		return Record{}, fmt.Errorf("ics exports cannot be decoded into a full record")
	default:
		return Record{}, fmt.Errorf("unknown export format %q", f)
	}
	if err := rec.Check(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Marshal is Encode into a byte slice.
func Marshal(rec Record, f Format, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, rec, f, loc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes rec to path, inferring the format from the extension
// when f is empty. Parent directories are created as needed.
func WriteFile(path string, rec Record, f Format, loc *time.Location) error {
	if f == "" {
		var err error
		if f, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	data, err := Marshal(rec, f, loc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to finalize export: %w", err)
	}
	return nil
}

// ReadFile decodes a JSON or YAML export from path.
func ReadFile(path string) (Record, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Record{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to open export: %w", err)
	}
	defer file.Close()
	return Decode(file, f)
}
