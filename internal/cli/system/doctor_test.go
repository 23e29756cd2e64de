package system

import (
	"errors"
	"testing"

	"github.com/julianstephens/hearth/internal/backup"
	"github.com/julianstephens/hearth/internal/models"
)

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := backup.NewManager(ctx.Store.GetConfigPath()).CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor failed on a healthy store: %v", err)
	}
}

func TestDoctorCmd_MissingBackupsOnlyWarns(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	err := checkBackupsPresent(ctx)
	if !errors.Is(err, errWarning) {
		t.Errorf("expected a warning, got %v", err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("warnings should not fail doctor: %v", err)
	}
}

func TestDoctorCmd_Uninitialized(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("expected doctor to fail without storage")
	}
}

func TestDoctorCmd_HouseholdErrors(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	addTasks(t, ctx, models.Task{ID: "1", Name: "Dishes", AssignedTo: "carol"})
	if err := checkHousehold(ctx); err == nil || errors.Is(err, errWarning) {
		t.Errorf("expected an error for an unknown assignee, got %v", err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("expected doctor to report the household error")
	}
}

func TestCheckSchemaVersion(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := checkSchemaVersion(ctx); err != nil {
		t.Errorf("fresh store should be at the latest schema: %v", err)
	}
}
