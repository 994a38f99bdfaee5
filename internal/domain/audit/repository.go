package audit

import (
	"context"
	"time"
)

// LogRepository defines persistence for the activity trail
type LogRepository interface {
	// Append stores an entry and evicts the oldest ones so that at
	// most LogCap entries remain.
	Append(ctx context.Context, entry *LogEntry) error

	// FindAll returns all retained entries, newest first
	FindAll(ctx context.Context) ([]LogEntry, error)

	// FindSince returns retained entries created at or after the given
	// time, newest first. A zero time is equivalent to FindAll.
	FindSince(ctx context.Context, since time.Time) ([]LogEntry, error)

	// Count returns the number of retained entries
	Count(ctx context.Context) (int64, error)
}
