package state

import (
	"context"
	"fmt"
)

// RecoveryManager handles cycles left running by a crashed process.
type RecoveryManager struct {
	db *DB
}

// NewRecoveryManager creates a new RecoveryManager with the given database.
func NewRecoveryManager(db *DB) *RecoveryManager {
	return &RecoveryManager{db: db}
}

// Recover marks every cycle still in the running state as interrupted.
// It must run before the orchestrator starts, since any running cycle at
// that point belongs to a previous process. Returns the number of cycles
// marked.
func (rm *RecoveryManager) Recover(ctx context.Context) (int64, error) {
	result, err := rm.db.Exec(ctx, `UPDATE cycles SET outcome = ? WHERE outcome = ?`,
		string(OutcomeInterrupted), string(OutcomeRunning))
	if err != nil {
		return 0, fmt.Errorf("recover cycles: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return n, nil
}
