package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Outcome is how a cycle ended.
type Outcome string

const (
	OutcomeRunning     Outcome = "running"
	OutcomeHandled     Outcome = "handled"
	OutcomeExit        Outcome = "exit"
	OutcomeFailed      Outcome = "failed"
	OutcomeInterrupted Outcome = "interrupted"
)

// Cycle is one journal entry: a single listen-classify-act round.
type Cycle struct {
	ID        string        `json:"id"`
	Utterance string        `json:"utterance"`
	Decision  []string      `json:"decision"`
	Branch    string        `json:"branch"`
	Answer    string        `json:"answer"`
	Outcome   Outcome       `json:"outcome"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Stats summarises the journal.
type Stats struct {
	Total     int             `json:"total"`
	ByBranch  map[string]int  `json:"by_branch"`
	ByOutcome map[Outcome]int `json:"by_outcome"`
	Last      *Cycle          `json:"last,omitempty"`
}

// BeginCycle inserts c with outcome running.
func (db *DB) BeginCycle(ctx context.Context, c *Cycle) error {
	decision, err := json.Marshal(nonNil(c.Decision))
	if err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}
	c.Outcome = OutcomeRunning

	_, err = db.Exec(ctx, `
		INSERT INTO cycles (id, utterance, decision, branch, answer, outcome, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Utterance, string(decision), c.Branch, c.Answer, string(c.Outcome), c.Error,
		formatTime(c.StartedAt), c.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("begin cycle: %w", err)
	}
	return nil
}

// FinishCycle records the final state of c.
func (db *DB) FinishCycle(ctx context.Context, c *Cycle) error {
	decision, err := json.Marshal(nonNil(c.Decision))
	if err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}

	result, err := db.Exec(ctx, `
		UPDATE cycles SET utterance = ?, decision = ?, branch = ?, answer = ?, outcome = ?, error = ?, duration_ms = ?
		WHERE id = ?
	`, c.Utterance, string(decision), c.Branch, c.Answer, string(c.Outcome), c.Error, c.Duration.Milliseconds(), c.ID)
	if err != nil {
		return fmt.Errorf("finish cycle: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("finish cycle %s: not found", c.ID)
	}
	return nil
}

const cycleColumns = `id, utterance, decision, branch, answer, outcome, error, started_at, duration_ms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCycle(row rowScanner) (*Cycle, error) {
	var c Cycle
	var decision, startedAt string
	var durationMS int64
	if err := row.Scan(&c.ID, &c.Utterance, &decision, &c.Branch, &c.Answer, &c.Outcome, &c.Error, &startedAt, &durationMS); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(decision), &c.Decision); err != nil {
		return nil, fmt.Errorf("decode decision: %w", err)
	}
	c.StartedAt, _ = parseTime(startedAt)
	c.Duration = time.Duration(durationMS) * time.Millisecond
	return &c, nil
}

// GetCycle retrieves a cycle by ID. It returns nil when none exists.
func (db *DB) GetCycle(ctx context.Context, id string) (*Cycle, error) {
	row := db.QueryRow(ctx, `SELECT `+cycleColumns+` FROM cycles WHERE id = ?`, id)
	c, err := scanCycle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cycle: %w", err)
	}
	return c, nil
}

// ListCycles returns the most recent cycles, newest first. A limit <= 0
// returns all of them.
func (db *DB) ListCycles(ctx context.Context, limit int) ([]Cycle, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(ctx, `SELECT `+cycleColumns+` FROM cycles ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		cycles = append(cycles, *c)
	}
	return cycles, rows.Err()
}

// Stats aggregates the journal by branch and outcome.
func (db *DB) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByBranch: map[string]int{}, ByOutcome: map[Outcome]int{}}

	rows, err := db.Query(ctx, `SELECT branch, outcome, COUNT(*) FROM cycles GROUP BY branch, outcome`)
	if err != nil {
		return nil, fmt.Errorf("cycle stats: %w", err)
	}
	for rows.Next() {
		var branch string
		var outcome Outcome
		var n int
		if err := rows.Scan(&branch, &outcome, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats.Total += n
		stats.ByBranch[branch] += n
		stats.ByOutcome[outcome] += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cycle stats: %w", err)
	}

	last, err := db.ListCycles(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(last) == 1 {
		stats.Last = &last[0]
	}
	return stats, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
