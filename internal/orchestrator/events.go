package orchestrator

import (
	"time"

	"github.com/ShayCichocki/vox/pkg/models"
)

// EventType represents the type of orchestrator event.
type EventType string

const (
	// EventCycleStarted indicates an utterance was captured and is being handled.
	EventCycleStarted EventType = "cycle_started"
	// EventDecision carries the classifier's Decision.
	EventDecision EventType = "decision"
	// EventActionCompleted reports one automation handler result.
	EventActionCompleted EventType = "action_completed"
	// EventAnswer carries a spoken answer.
	EventAnswer EventType = "answer"
	// EventCycleCompleted indicates the cycle finished, whatever the branch.
	EventCycleCompleted EventType = "cycle_completed"
)

// OrchestratorEvent represents an event emitted by the orchestrator.
// These events feed the TUI activity panel.
type OrchestratorEvent struct {
	// Type is the kind of event.
	Type EventType
	// CycleID identifies the cycle the event belongs to.
	CycleID string
	// Branch is the path the cycle took (cycle_completed only).
	Branch Branch
	// Decision is set on decision events.
	Decision models.Decision
	// Result is set on action_completed events.
	Result *models.ActionResult
	// Message provides additional context about the event.
	Message string
	// Error contains error details for failure events.
	Error error
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Duration is the elapsed time of the cycle or action.
	Duration time.Duration
}
