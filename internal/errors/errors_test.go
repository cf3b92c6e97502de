package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/daylog/internal/journal"
	"github.com/julianstephens/daylog/internal/keyring"
	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/storage/postgres"
	"github.com/julianstephens/daylog/internal/validation"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("answer cannot be empty"),
			expected: "Error: answer cannot be empty",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to save answer: %w", errors.New("disk full")),
			expected: "Error: failed to save answer: disk full",
		},
		{
			name:     "error with hint",
			err:      fmt.Errorf("failed to save settings: %w", validation.ErrInvalidTime),
			expected: "Error: failed to save settings: time must be HH:MM (24h)\nHint: use 24-hour time, for example 20:00",
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

func TestFormatf(t *testing.T) {
	got := Formatf("invalid time %q", "25:00")
	want := `Error: invalid time "25:00"`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unknown", errors.New("disk full"), ""},
		{"corrupt record", fmt.Errorf("%w: answers: bad json", journal.ErrCorruptRecord), "inspect it with 'daylog debug dump', or roll back with 'daylog backup restore'"},
		{"store not loaded", fmt.Errorf("failed to read answers: %w", storage.ErrNotLoaded), "run 'daylog doctor' to check the storage backend"},
		{"password in dsn", postgres.ErrEmbeddedCredentials, "store the connection string with 'daylog keyring set' instead"},
		{"no credentials", fmt.Errorf("open store: %w", keyring.ErrNotFound), "store a connection string with 'daylog keyring set'"},
		{"bad time", validation.ErrInvalidTime, "use 24-hour time, for example 20:00"},
		{"bad date", fmt.Errorf("%w: %q", validation.ErrInvalidDate, "05/01"), "use a date like 2024-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hint(tt.err); got != tt.want {
				t.Errorf("Hint(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

// TestFatal runs Fatal in a helper process and checks the exit code and stderr
func TestFatal(t *testing.T) {
	if os.Getenv("DAYLOG_TEST_FATAL") == "1" {
		Fatal(fmt.Errorf("test error: %w", journal.ErrCorruptRecord))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "DAYLOG_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	for _, want := range []string{"Error: test error", "Hint: inspect it with 'daylog debug dump'"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), want)
		}
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("DAYLOG_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "DAYLOG_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("DAYLOG_TEST_FATALF") == "1" {
		Fatalf("no answer for %s", "2024-05-01")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatalf$")
	cmd.Env = append(os.Environ(), "DAYLOG_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatalf() did not exit with error: %v", err)
	}
	if !strings.Contains(stderr.String(), "Error: no answer for 2024-05-01") {
		t.Errorf("Fatalf() stderr = %q", stderr.String())
	}
}
