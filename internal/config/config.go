// Package config loads application settings from ~/.config/hearth/config.yaml
// and HEARTH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

// Source says where the database target came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "environment"
	SourceFile    Source = "config file"
	SourceKeyring Source = "keyring"
	SourceDefault Source = "default"
)

// Config is the application configuration. Household settings live in storage;
// Template only seeds them on init.
type Config struct {
	Database  string
	Debug     bool
	LogFormat string
	LogDir    string
	Template  models.Settings
	// File is the config file that was read, empty when none was found.
	File string
}

// Target is a resolved storage location.
type Target struct {
	Value  string
	Source Source
}

// Trusted reports whether the target may carry a password. Flags and config
// files are shared or logged, the environment and the keyring are not.
func (t Target) Trusted() bool {
	return t.Source == SourceEnv || t.Source == SourceKeyring
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := models.DefaultSettings()
	v.SetDefault("database", "")
	v.SetDefault("debug", false)
	v.SetDefault("log.format", "text")
	v.SetDefault("log.dir", filepath.Join(filepath.Dir(constants.DefaultConfigPath), "logs"))
	v.SetDefault("template.work_start", defaults.WorkStart)
	v.SetDefault("template.work_end", defaults.WorkEnd)
	v.SetDefault("template.lunch_start", defaults.LunchStart)
	v.SetDefault("template.lunch_end", defaults.LunchEnd)
	v.SetDefault("template.slot_min", defaults.SlotMin)
	v.SetDefault("template.period", string(defaults.Period))
	v.SetDefault("template.timezone", defaults.Timezone)
	return v
}

// Load reads path, or the default config file when path is empty. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigFile
	}
	v.SetConfigFile(ExpandHome(path))

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || explicit {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	cfg.Database = v.GetString("database")
	cfg.Debug = v.GetBool("debug")
	cfg.LogFormat = strings.ToLower(v.GetString("log.format"))
	cfg.LogDir = ExpandHome(v.GetString("log.dir"))
	cfg.Template = models.Settings{
		WorkStart:  v.GetString("template.work_start"),
		WorkEnd:    v.GetString("template.work_end"),
		LunchStart: v.GetString("template.lunch_start"),
		LunchEnd:   v.GetString("template.lunch_end"),
		SlotMin:    v.GetInt("template.slot_min"),
		Period:     constants.PeriodKind(v.GetString("template.period")),
		Timezone:   v.GetString("template.timezone"),
	}
	models.ApplyDefaultSettings(&cfg.Template)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q (want text or json)", c.LogFormat)
	}
	switch c.Template.Period {
	case constants.PeriodWeek, constants.PeriodMonth:
	default:
		return fmt.Errorf("invalid template.period %q (want week or month)", c.Template.Period)
	}
	if c.Template.SlotMin <= 0 {
		return fmt.Errorf("invalid template.slot_min %d", c.Template.SlotMin)
	}
	return nil
}

// ResolveDatabase picks the storage target. Precedence: flag, HEARTH_DATABASE,
// config file, keyring, default SQLite path. keyringLookup may be nil.
func (c *Config) ResolveDatabase(flag string, keyringLookup func() (string, error)) Target {
	if flag != "" {
		return Target{Value: ExpandHome(flag), Source: SourceFlag}
	}
	if env := os.Getenv(constants.EnvPrefix + "_DATABASE"); env != "" {
		return Target{Value: ExpandHome(env), Source: SourceEnv}
	}
	if c.Database != "" {
		return Target{Value: ExpandHome(c.Database), Source: SourceFile}
	}
	if keyringLookup != nil {
		if connStr, err := keyringLookup(); err == nil && connStr != "" {
			return Target{Value: connStr, Source: SourceKeyring}
		}
	}
	return Target{Value: ExpandHome(constants.DefaultConfigPath), Source: SourceDefault}
}
