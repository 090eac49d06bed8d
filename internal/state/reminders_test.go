package state

import (
	"context"
	"testing"
	"time"
)

func TestReminders(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	id1, err := db.AddReminder(ctx, "call mom", now)
	if err != nil {
		t.Fatalf("AddReminder failed: %v", err)
	}
	if _, err := db.AddReminder(ctx, "buy milk", now.Add(time.Minute)); err != nil {
		t.Fatalf("AddReminder failed: %v", err)
	}
	if _, err := db.AddReminder(ctx, "   ", now); err == nil {
		t.Error("expected error for empty reminder")
	}

	if err := db.CompleteReminder(ctx, id1, now.Add(time.Hour)); err != nil {
		t.Fatalf("CompleteReminder failed: %v", err)
	}
	if err := db.CompleteReminder(ctx, 999, now); err == nil {
		t.Error("expected error completing unknown reminder")
	}

	pending, err := db.ListReminders(ctx, true)
	if err != nil {
		t.Fatalf("ListReminders failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Text != "buy milk" {
		t.Errorf("pending = %+v, want [buy milk]", pending)
	}

	all, err := db.ListReminders(ctx, false)
	if err != nil {
		t.Fatalf("ListReminders failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d reminders, want 2", len(all))
	}
	if !all[0].Done || all[0].DoneAt == nil {
		t.Errorf("first reminder = %+v, want done", all[0])
	}
	if !all[0].CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", all[0].CreatedAt, now)
	}
}

func TestHealthRecords(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	records := []struct {
		kind   HealthKind
		detail string
	}{
		{HealthMedication, "aspirin 100mg at 8am"},
		{HealthDose, "aspirin"},
		{HealthSymptom, "headache"},
		{HealthDose, "vitamin d"},
	}
	for i, r := range records {
		if _, err := db.AddHealthRecord(ctx, r.kind, r.detail, now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("AddHealthRecord failed: %v", err)
		}
	}

	doses, err := db.ListHealthRecords(ctx, HealthDose, 0)
	if err != nil {
		t.Fatalf("ListHealthRecords failed: %v", err)
	}
	if len(doses) != 2 || doses[0].Detail != "vitamin d" {
		t.Errorf("doses = %+v, want [vitamin d aspirin]", doses)
	}

	latest, err := db.ListHealthRecords(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListHealthRecords failed: %v", err)
	}
	if len(latest) != 1 || latest[0].Kind != HealthDose {
		t.Errorf("latest = %+v", latest)
	}
}
