package backups

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/hearth/internal/backup"
	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/scheduler"
	"github.com/julianstephens/hearth/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}

	cleanup := func() {
		if err := ctx.Store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, dbPath, cleanup
}

func onlyBackup(t *testing.T, dbPath string) backup.BackupInfo {
	t.Helper()
	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	return backups[0]
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list on empty dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	onlyBackup(t, dbPath)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	if err := ctx.Store.AddPerson(models.Person{ID: "a", Name: "Alice"}); err != nil {
		t.Fatalf("failed to add person: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	saved := onlyBackup(t, dbPath)

	if err := ctx.Store.AddPerson(models.Person{ID: "b", Name: "Bob"}); err != nil {
		t.Fatalf("failed to add person: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: saved.Name(), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	persons, err := ctx.Store.GetAllPersons()
	if err != nil {
		t.Fatalf("failed to list persons: %v", err)
	}
	if len(persons) != 1 || persons[0].ID != "a" {
		t.Errorf("expected only Alice after restore, got %+v", persons)
	}
}

func TestBackupRestoreCmd_Declined(t *testing.T) {
	ctx, dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	saved := onlyBackup(t, dbPath)
	if err := ctx.Store.AddPerson(models.Person{ID: "b", Name: "Bob"}); err != nil {
		t.Fatalf("failed to add person: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: saved.Path, in: strings.NewReader("n\n")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("declined restore should not fail: %v", err)
	}

	if _, err := ctx.Store.GetPerson("b"); err != nil {
		t.Errorf("declined restore must leave data untouched: %v", err)
	}
}

func TestBackupRestoreCmd_Missing(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &BackupRestoreCmd{BackupFile: "nope.db", Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackup_UnsupportedStore(t *testing.T) {
	ctx := &cli.Context{Store: sqlite.NewStore("postgresql")}

	err := (&BackupCreateCmd{}).Run(ctx)
	if !errors.Is(err, backup.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
