package state

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestCycleLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	c := &Cycle{ID: "c1", Utterance: "open chrome and search for cats", StartedAt: start}
	if err := db.BeginCycle(ctx, c); err != nil {
		t.Fatalf("BeginCycle failed: %v", err)
	}

	got, err := db.GetCycle(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCycle failed: %v", err)
	}
	if got.Outcome != OutcomeRunning {
		t.Errorf("Outcome = %q, want %q", got.Outcome, OutcomeRunning)
	}
	if len(got.Decision) != 0 {
		t.Errorf("Decision = %v, want empty", got.Decision)
	}

	c.Decision = []string{"open chrome", "google search cats"}
	c.Branch = "automation"
	c.Outcome = OutcomeHandled
	c.Duration = 1500 * time.Millisecond
	if err := db.FinishCycle(ctx, c); err != nil {
		t.Fatalf("FinishCycle failed: %v", err)
	}

	got, err = db.GetCycle(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCycle failed: %v", err)
	}
	if !reflect.DeepEqual(got.Decision, c.Decision) {
		t.Errorf("Decision = %v, want %v", got.Decision, c.Decision)
	}
	if got.Branch != "automation" || got.Outcome != OutcomeHandled {
		t.Errorf("Branch/Outcome = %q/%q", got.Branch, got.Outcome)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", got.Duration)
	}
	if !got.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, start)
	}
}

func TestGetCycle_Missing(t *testing.T) {
	db := setupTestDB(t)

	c, err := db.GetCycle(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetCycle failed: %v", err)
	}
	if c != nil {
		t.Errorf("GetCycle = %+v, want nil", c)
	}
}

func TestFinishCycle_Missing(t *testing.T) {
	db := setupTestDB(t)

	if err := db.FinishCycle(context.Background(), &Cycle{ID: "ghost"}); err == nil {
		t.Error("expected error finishing unknown cycle")
	}
}

func TestListCyclesAndStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	entries := []struct {
		id      string
		branch  string
		outcome Outcome
	}{
		{"a", "chat", OutcomeHandled},
		{"b", "automation", OutcomeHandled},
		{"c", "chat", OutcomeHandled},
		{"d", "exit", OutcomeExit},
	}
	for i, e := range entries {
		c := &Cycle{ID: e.id, Utterance: e.id, StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.BeginCycle(ctx, c); err != nil {
			t.Fatalf("BeginCycle failed: %v", err)
		}
		c.Branch = e.branch
		c.Outcome = e.outcome
		if err := db.FinishCycle(ctx, c); err != nil {
			t.Fatalf("FinishCycle failed: %v", err)
		}
	}

	cycles, err := db.ListCycles(ctx, 2)
	if err != nil {
		t.Fatalf("ListCycles failed: %v", err)
	}
	if len(cycles) != 2 || cycles[0].ID != "d" || cycles[1].ID != "c" {
		t.Errorf("ListCycles(2) = %v, want [d c]", cycles)
	}

	all, err := db.ListCycles(ctx, 0)
	if err != nil {
		t.Fatalf("ListCycles failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListCycles(0) returned %d cycles, want 4", len(all))
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.ByBranch["chat"] != 2 {
		t.Errorf("ByBranch[chat] = %d, want 2", stats.ByBranch["chat"])
	}
	if stats.ByOutcome[OutcomeExit] != 1 {
		t.Errorf("ByOutcome[exit] = %d, want 1", stats.ByOutcome[OutcomeExit])
	}
	if stats.Last == nil || stats.Last.ID != "d" {
		t.Errorf("Last = %+v, want d", stats.Last)
	}
}

func TestRecover(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	running := &Cycle{ID: "r", Utterance: "hi", StartedAt: time.Now()}
	done := &Cycle{ID: "d", Utterance: "bye", StartedAt: time.Now()}
	for _, c := range []*Cycle{running, done} {
		if err := db.BeginCycle(ctx, c); err != nil {
			t.Fatalf("BeginCycle failed: %v", err)
		}
	}
	done.Outcome = OutcomeHandled
	if err := db.FinishCycle(ctx, done); err != nil {
		t.Fatalf("FinishCycle failed: %v", err)
	}

	n, err := NewRecoveryManager(db).Recover(ctx)
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Recover marked %d cycles, want 1", n)
	}

	c, _ := db.GetCycle(ctx, "r")
	if c.Outcome != OutcomeInterrupted {
		t.Errorf("Outcome = %q, want %q", c.Outcome, OutcomeInterrupted)
	}
	c, _ = db.GetCycle(ctx, "d")
	if c.Outcome != OutcomeHandled {
		t.Errorf("Outcome = %q, want %q", c.Outcome, OutcomeHandled)
	}
}
