package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/cli/backups"
	"github.com/julianstephens/hearth/internal/cli/persons"
	"github.com/julianstephens/hearth/internal/cli/schedules"
	"github.com/julianstephens/hearth/internal/cli/settings"
	"github.com/julianstephens/hearth/internal/cli/system"
	"github.com/julianstephens/hearth/internal/cli/tasks"
	"github.com/julianstephens/hearth/internal/config"
	"github.com/julianstephens/hearth/internal/constants"
	hearthErrors "github.com/julianstephens/hearth/internal/errors"
	"github.com/julianstephens/hearth/internal/keyring"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/scheduler"
	"github.com/julianstephens/hearth/internal/storage"
	"github.com/julianstephens/hearth/internal/storage/postgres"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `name:"config" help:"Config file path." placeholder:"PATH" env:"HEARTH_CONFIG"`
	DB         string `name:"db" help:"SQLite path, .json file or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded here; use HEARTH_DATABASE, .pgpass or 'hearth db set-connection' instead." placeholder:"TARGET"`
	Debug      bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd        `cmd:"" help:"Initialize hearth storage."`
	Doctor   system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd    `cmd:"" help:"Check persons, tasks and settings for conflicts."`
	Generate schedules.GenerateCmd `cmd:"" help:"Generate a household schedule."`
	Show     schedules.ShowCmd     `cmd:"" help:"Show a saved schedule."`
	Export   schedules.ExportCmd   `cmd:"" help:"Export a saved schedule as JSON, YAML or iCalendar."`
	Tui      cli.TuiCmd            `cmd:"" help:"Browse schedules and tasks interactively."`
	Person   struct {
		Add     persons.PersonAddCmd     `cmd:"" help:"Add a person."`
		List    persons.PersonListCmd    `cmd:"" help:"List persons." default:"1"`
		Edit    persons.PersonEditCmd    `cmd:"" help:"Edit a person."`
		Delete  persons.PersonDeleteCmd  `cmd:"" help:"Delete a person."`
		Restore persons.PersonRestoreCmd `cmd:"" help:"Restore a deleted person."`
	} `cmd:"" help:"Manage household members."`
	Task struct {
		Add     tasks.TaskAddCmd     `cmd:"" help:"Add a new task."`
		List    tasks.TaskListCmd    `cmd:"" help:"List all tasks." default:"1"`
		Edit    tasks.TaskEditCmd    `cmd:"" help:"Edit an existing task."`
		Delete  tasks.TaskDeleteCmd  `cmd:"" help:"Delete a task."`
		Restore tasks.TaskRestoreCmd `cmd:"" help:"Restore a deleted task."`
	} `cmd:"" help:"Manage tasks."`
	Schedules struct {
		List    schedules.ListCmd    `cmd:"" help:"List saved schedules." default:"1"`
		Delete  schedules.DeleteCmd  `cmd:"" help:"Delete a saved schedule."`
		Restore schedules.RestoreCmd `cmd:"" help:"Restore a deleted schedule."`
	} `cmd:"" help:"Manage saved schedules."`
	Settings struct {
		Show settings.ShowCmd `cmd:"" help:"Show the work-hours template." default:"1"`
		Set  settings.SetCmd  `cmd:"" help:"Update the work-hours template."`
	} `cmd:"" help:"Manage household settings."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Db struct {
		SetConnection   system.SetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		ClearConnection system.ClearConnectionCmd `cmd:"" help:"Remove the connection string from the OS keyring."`
		Status          system.StatusCmd          `cmd:"" help:"Show the storage in use and the keyring status." default:"1"`
	} `cmd:"" help:"Manage the database connection."`
}

// Commands that run before storage exists or only touch the keyring.
var skipLoad = map[string]bool{
	"init":   true,
	"doctor": true,
	"db":     true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Household chore and activity scheduler"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	hearthErrors.Fatal(err)
	if CLI.Debug {
		cfg.Debug = true
	}

	logDir := cfg.LogDir
	if logDir == "" {
		logDir = filepath.Join(filepath.Dir(config.ExpandHome(constants.DefaultConfigFile)), "logs")
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, LogDir: logDir, Format: cfg.LogFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	target := cfg.ResolveDatabase(CLI.DB, keyring.GetConnectionString)
	logger.Debug("Resolved storage", "source", target.Source, "target", keyring.MaskPassword(target.Value))

	open := storage.Open
	if target.Trusted() {
		open = storage.OpenTrusted
	}
	store, err := open(target.Value)
	if errors.Is(err, postgres.ErrEmbeddedCredentials) {
		err = hearthErrors.WithHint(err, "store it with 'hearth db set-connection', export HEARTH_DATABASE, or use .pgpass")
	}
	hearthErrors.Fatal(err)

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Config:    cfg,
		Target:    target,
	}

	// Load the store before running the command (init and diagnostics handle their own loading)
	if command := strings.Fields(ctx.Command()); len(command) > 0 && !skipLoad[command[0]] {
		if err := store.Load(); err != nil {
			hearthErrors.Fatal(hearthErrors.WithHint(err, "check --db or run 'hearth doctor'"))
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	hearthErrors.Fatal(err)
}
