// Package events publishes assistant status changes to a NATS JetStream
// bus so that other processes can follow the assistant without polling.
package events

import (
	"time"

	"github.com/ShayCichocki/vox/internal/status"
)

// Event is anything that can be published on the bus.
type Event interface {
	// EventType is appended to the subject prefix, e.g. "status".
	EventType() string
	Payload() any
}

// StatusEvent reports one write to the shared status channel.
type StatusEvent struct {
	Status     string    `json:"status"`
	Label      string    `json:"label"`
	Mic        bool      `json:"mic"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewStatusEvent builds a StatusEvent from a snapshot.
func NewStatusEvent(s status.Snapshot, at time.Time) StatusEvent {
	return StatusEvent{
		Status:     string(s.Status),
		Label:      s.Status.Label(),
		Mic:        s.Mic,
		OccurredAt: at,
	}
}

func (e StatusEvent) EventType() string { return "status" }
func (e StatusEvent) Payload() any      { return e }
