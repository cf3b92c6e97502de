// Package journal implements the answer, settings and user repositories on top
// of a storage.Provider. Every record is a JSON blob under its own key.
//
// Reads are best-effort: a missing, unreadable or corrupt record is logged and
// reported as absent (or the default). Writes propagate store failures.
package journal

import (
	"errors"
	"time"
)

var (
	// ErrCorruptRecord marks a stored blob that cannot be decoded.
	ErrCorruptRecord = errors.New("stored record is corrupt")
	// ErrInvalidUser is returned when signing in without an id.
	ErrInvalidUser = errors.New("user id cannot be empty")
)

// Clock returns the current time. Repositories take one so tests can pin "today".
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
