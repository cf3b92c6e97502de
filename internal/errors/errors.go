// Package errors turns command failures into the messages daylog prints
// before exiting.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/daylog/internal/journal"
	"github.com/julianstephens/daylog/internal/keyring"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/storage/postgres"
	"github.com/julianstephens/daylog/internal/validation"
)

// hints maps known failures to the command that usually resolves them.
// The first match wins, so more specific errors come first.
var hints = []struct {
	target error
	hint   string
}{
	{journal.ErrCorruptRecord, "inspect it with 'daylog debug dump', or roll back with 'daylog backup restore'"},
	{storage.ErrNotLoaded, "run 'daylog doctor' to check the storage backend"},
	{postgres.ErrEmbeddedCredentials, "store the connection string with 'daylog keyring set' instead"},
	{keyring.ErrNotFound, "store a connection string with 'daylog keyring set'"},
	{validation.ErrInvalidTime, "use 24-hour time, for example 20:00"},
	{validation.ErrInvalidDate, "use a date like 2024-05-01"},
}

// Hint returns a follow-up suggestion for err, or "" when there is none.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err as "Error: ..." with a hint line when one applies.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

func Formatf(format string, args ...interface{}) string {
	return Format(fmt.Errorf(format, args...))
}

// Fatal logs err, prints it with any hint, and exits with status 1.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err, "hint", Hint(err))
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a formatted message; %w verbs keep their hints.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
