package state

import (
	"context"
	"fmt"
	"time"
)

// HealthKind classifies a health record.
type HealthKind string

const (
	HealthMedication  HealthKind = "medication"
	HealthDose        HealthKind = "dose"
	HealthSymptom     HealthKind = "symptom"
	HealthAppointment HealthKind = "appointment"
	HealthEmergency   HealthKind = "emergency"
	HealthContraction HealthKind = "contraction"
)

// HealthRecord is one health journal entry.
type HealthRecord struct {
	ID        int64      `json:"id"`
	Kind      HealthKind `json:"kind"`
	Detail    string     `json:"detail"`
	CreatedAt time.Time  `json:"created_at"`
}

// AddHealthRecord stores a health record and returns its ID.
func (db *DB) AddHealthRecord(ctx context.Context, kind HealthKind, detail string, at time.Time) (int64, error) {
	result, err := db.Exec(ctx, `INSERT INTO health_records (kind, detail, created_at) VALUES (?, ?, ?)`,
		string(kind), detail, formatTime(at))
	if err != nil {
		return 0, fmt.Errorf("add health record: %w", err)
	}
	return result.LastInsertId()
}

// ListHealthRecords returns the newest records, optionally of one kind.
// An empty kind matches all kinds; a limit <= 0 returns all records.
func (db *DB) ListHealthRecords(ctx context.Context, kind HealthKind, limit int) ([]HealthRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(ctx, `
		SELECT id, kind, detail, created_at FROM health_records
		WHERE ? = '' OR kind = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, string(kind), string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	defer rows.Close()

	var records []HealthRecord
	for rows.Next() {
		var r HealthRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan health record: %w", err)
		}
		r.CreatedAt, _ = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
