package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.File, "no config file exists")
	assert.Empty(t, cfg.Database)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, models.DefaultSettings(), cfg.Template)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".config", "hearth", "logs"), cfg.LogDir)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
database: ~/households/home.json
debug: true
log:
  format: JSON
template:
  work_start: "07:00"
  slot_min: 15
  period: month
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "~/households/home.json", cfg.Database)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "07:00", cfg.Template.WorkStart)
	assert.Equal(t, constants.DefaultWorkEnd, cfg.Template.WorkEnd, "unset keys keep defaults")
	assert.Equal(t, 15, cfg.Template.SlotMin)
	assert.Equal(t, constants.PeriodMonth, cfg.Template.Period)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "debug: false\nlog:\n  format: text\n")
	t.Setenv("HEARTH_DEBUG", "true")
	t.Setenv("HEARTH_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config file must exist")

	_, err = Load(writeConfig(t, "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "log.format")

	_, err = Load(writeConfig(t, "template:\n  period: year\n"))
	assert.ErrorContains(t, err, "template.period")

	_, err = Load(writeConfig(t, "debug: [unterminated"))
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config/hearth/hearth.db"), ExpandHome("~/.config/hearth/hearth.db"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/tmp/hearth.db", ExpandHome("/tmp/hearth.db"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
}

func TestResolveDatabase(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HEARTH_DATABASE", "")

	fromKeyring := func() (string, error) { return "postgres://hearth:pw@db/hearth", nil }
	noKeyring := func() (string, error) { return "", errors.New("not found") }

	cfg := &Config{Database: "~/file.db"}

	got := cfg.ResolveDatabase("/flag.db", fromKeyring)
	assert.Equal(t, Target{Value: "/flag.db", Source: SourceFlag}, got)
	assert.False(t, got.Trusted())

	got = cfg.ResolveDatabase("", fromKeyring)
	assert.Equal(t, Target{Value: filepath.Join(home, "file.db"), Source: SourceFile}, got)

	got = (&Config{}).ResolveDatabase("", fromKeyring)
	assert.Equal(t, SourceKeyring, got.Source)
	assert.True(t, got.Trusted())

	got = (&Config{}).ResolveDatabase("", noKeyring)
	assert.Equal(t, Target{Value: filepath.Join(home, ".config/hearth/hearth.db"), Source: SourceDefault}, got)

	t.Setenv("HEARTH_DATABASE", "postgres://hearth@env/hearth")
	got = cfg.ResolveDatabase("", nil)
	assert.Equal(t, Target{Value: "postgres://hearth@env/hearth", Source: SourceEnv}, got)
	assert.True(t, got.Trusted())
}
