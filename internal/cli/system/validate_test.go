package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/models"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	ctx, _, cleanup := setupTestInitDB(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return ctx, cleanup
}

func addTasks(t *testing.T, ctx *cli.Context, tasks ...models.Task) {
	t.Helper()
	for _, task := range tasks {
		if err := ctx.Store.AddTask(models.NormalizeTask(task)); err != nil {
			t.Fatalf("failed to add task: %v", err)
		}
	}
}

func TestValidateCmd_Clean(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := ctx.Store.AddPerson(models.Person{ID: "alice", Name: "Alice"}); err != nil {
		t.Fatalf("failed to add person: %v", err)
	}
	addTasks(t, ctx, models.Task{ID: "1", Name: "Dishes", AssignedTo: "alice"})

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Errorf("validate failed on a clean household: %v", err)
	}
}

func TestValidateCmd_Errors(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	addTasks(t, ctx, models.Task{ID: "1", Name: "Dishes", AssignedTo: "carol"})

	err := (&ValidateCmd{}).Run(ctx)
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestValidateCmd_FixDuplicates(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	addTasks(t, ctx,
		models.Task{ID: "b", Name: "Sweep"},
		models.Task{ID: "a", Name: "Sweep"},
		models.Task{ID: "c", Name: "Mop"},
	)

	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("validate --fix failed: %v", err)
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks after fix, got %d", len(tasks))
	}
	if _, err := ctx.Store.GetTask("a"); err != nil {
		t.Errorf("the lowest id should be kept: %v", err)
	}
	if _, err := ctx.Store.GetTask("b"); err == nil {
		t.Error("the duplicate should be deleted")
	}
}

func TestValidateCmd_File(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "home.yaml")
	body := `persons:
  - name: Alice
tasks:
  - name: Laundry
    assigned_to: Bob
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write household: %v", err)
	}

	if err := (&ValidateCmd{File: path}).Run(ctx); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected the unknown assignee to fail validation, got %v", err)
	}
	if err := (&ValidateCmd{File: path, Fix: true}).Run(ctx); err == nil || errors.Is(err, ErrValidationFailed) {
		t.Errorf("--fix with --file should be refused, got %v", err)
	}
}
