package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("something went wrong"), "Error: something went wrong"},
		{"wrapped error", fmt.Errorf("failed to load: %w", errors.New("disk full")), "Error: failed to load: disk full"},
		{
			"hinted error",
			WithHint(errors.New("storage not initialized"), "run 'hearth init' first"),
			"Error: storage not initialized\n  hint: run 'hearth init' first",
		},
		{
			"hint survives wrapping",
			fmt.Errorf("loading: %w", WithHint(errors.New("no such table"), "run 'hearth init' to migrate")),
			"Error: loading: no such table\n  hint: run 'hearth init' to migrate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "ignored") != nil {
		t.Error("WithHint(nil) should be nil")
	}

	base := errors.New("base")
	if !errors.Is(WithHint(base, "h"), base) {
		t.Error("hinted errors should unwrap to the original")
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		format   string
		args     []interface{}
		expected string
	}{
		{"something went wrong", nil, "Error: something went wrong"},
		{"failed to load %s", []interface{}{"household.yaml"}, "Error: failed to load household.yaml"},
		{"connection to %s:%d failed", []interface{}{"localhost", 5432}, "Error: connection to localhost:5432 failed"},
	}

	for _, tt := range tests {
		if got := Formatf(tt.format, tt.args...); got != tt.expected {
			t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, got, tt.expected)
		}
	}
}

// runHelper re-runs the test binary with env set and returns its exit error and stderr.
func runHelper(t *testing.T, name, env string) (error, string) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+name+"$")
	cmd.Env = append(os.Environ(), env+"=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return err, stderr.String()
}

func TestFatal(t *testing.T) {
	if os.Getenv("HEARTH_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	err, stderr := runHelper(t, "TestFatal", "HEARTH_TEST_FATAL")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Fatal() did not exit with status 1: %v", err)
	}
	if !strings.Contains(stderr, "Error: test error") {
		t.Errorf("Fatal() stderr = %q", stderr)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("HEARTH_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	if err, _ := runHelper(t, "TestFatal_NilError", "HEARTH_TEST_FATAL_NIL"); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("HEARTH_TEST_FATALF") == "1" {
		Fatalf("connection to %s:%d failed", "localhost", 5432)
		return
	}

	err, stderr := runHelper(t, "TestFatalf", "HEARTH_TEST_FATALF")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Fatalf() did not exit with status 1: %v", err)
	}
	if !strings.Contains(stderr, "Error: connection to localhost:5432 failed") {
		t.Errorf("Fatalf() stderr = %q", stderr)
	}
}
