package state

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Reminder is a stored reminder.
type Reminder struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Done      bool       `json:"done"`
	DoneAt    *time.Time `json:"done_at,omitempty"`
}

// AddReminder stores a pending reminder and returns its ID.
func (db *DB) AddReminder(ctx context.Context, text string, createdAt time.Time) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("add reminder: empty text")
	}
	result, err := db.Exec(ctx, `INSERT INTO reminders (text, created_at) VALUES (?, ?)`, text, formatTime(createdAt))
	if err != nil {
		return 0, fmt.Errorf("add reminder: %w", err)
	}
	return result.LastInsertId()
}

// ListReminders returns reminders oldest first.
func (db *DB) ListReminders(ctx context.Context, pendingOnly bool) ([]Reminder, error) {
	query := `SELECT id, text, created_at, done, done_at FROM reminders`
	if pendingOnly {
		query += ` WHERE done = 0`
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var r Reminder
		var createdAt string
		var doneAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Text, &createdAt, &r.Done, &doneAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		r.CreatedAt, _ = parseTime(createdAt)
		r.DoneAt = parseNullableTime(doneAt)
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// CompleteReminder marks a reminder done.
func (db *DB) CompleteReminder(ctx context.Context, id int64, at time.Time) error {
	result, err := db.Exec(ctx, `UPDATE reminders SET done = 1, done_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("complete reminder: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("complete reminder %d: not found", id)
	}
	return nil
}
