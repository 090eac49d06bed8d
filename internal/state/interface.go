package state

import (
	"context"
	"io"
	"time"
)

// CycleStore handles the cycle journal.
type CycleStore interface {
	BeginCycle(ctx context.Context, c *Cycle) error
	FinishCycle(ctx context.Context, c *Cycle) error
	GetCycle(ctx context.Context, id string) (*Cycle, error)
	ListCycles(ctx context.Context, limit int) ([]Cycle, error)
	Stats(ctx context.Context) (*Stats, error)
}

// ReminderStore handles reminders.
type ReminderStore interface {
	AddReminder(ctx context.Context, text string, createdAt time.Time) (int64, error)
	ListReminders(ctx context.Context, pendingOnly bool) ([]Reminder, error)
	CompleteReminder(ctx context.Context, id int64, at time.Time) error
}

// HealthStore handles health records.
type HealthStore interface {
	AddHealthRecord(ctx context.Context, kind HealthKind, detail string, at time.Time) (int64, error)
	ListHealthRecords(ctx context.Context, kind HealthKind, limit int) ([]HealthRecord, error)
}

// Migrator handles database schema migrations.
type Migrator interface {
	Migrate() error
}

// StateStore composes every persistence concern behind one handle.
type StateStore interface {
	io.Closer
	Migrator
	CycleStore
	ReminderStore
	HealthStore
}

// Compile-time verification that DB implements all interfaces.
var (
	_ StateStore    = (*DB)(nil)
	_ CycleStore    = (*DB)(nil)
	_ ReminderStore = (*DB)(nil)
	_ HealthStore   = (*DB)(nil)
)
