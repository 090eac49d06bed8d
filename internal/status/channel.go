// Package status holds the two last-writer-wins slots shared between the
// orchestrator loop and the presentation layer.
package status

import (
	"sync"
	"sync/atomic"

	"github.com/ShayCichocki/vox/pkg/models"
)

// Snapshot is a point-in-time copy of both slots.
type Snapshot struct {
	Status models.AssistantStatus `json:"status"`
	Mic    bool                   `json:"mic"`
}

// Observer is called synchronously after every write. It must not block.
type Observer func(Snapshot)

// Channel is a pair of independently overwritten slots.
// There is no queue: readers only see the most recent write, and a slow
// poller may never observe short-lived intermediate values.
type Channel struct {
	status atomic.Value
	mic    atomic.Bool

	mu        sync.RWMutex
	observers []Observer
}

// New returns a Channel holding StatusReady with the mic off.
func New() *Channel {
	c := &Channel{}
	c.status.Store(models.StatusReady)
	return c
}

// SetStatus overwrites the status slot.
func (c *Channel) SetStatus(s models.AssistantStatus) {
	c.status.Store(s)
	c.notify()
}

// GetStatus returns the most recently written status.
func (c *Channel) GetStatus() models.AssistantStatus {
	return c.status.Load().(models.AssistantStatus)
}

// SetMic overwrites the microphone slot.
func (c *Channel) SetMic(enabled bool) {
	c.mic.Store(enabled)
	c.notify()
}

// GetMic returns the most recently written microphone flag.
func (c *Channel) GetMic() bool {
	return c.mic.Load()
}

// ToggleMic flips the microphone flag and returns the new value.
func (c *Channel) ToggleMic() bool {
	for {
		old := c.mic.Load()
		if c.mic.CompareAndSwap(old, !old) {
			c.notify()
			return !old
		}
	}
}

// Snapshot returns both slots. The two loads are not atomic as a pair.
func (c *Channel) Snapshot() Snapshot {
	return Snapshot{Status: c.GetStatus(), Mic: c.GetMic()}
}

// Observe registers o to be called after every write.
func (c *Channel) Observe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

func (c *Channel) notify() {
	c.mu.RLock()
	observers := c.observers
	c.mu.RUnlock()

	if len(observers) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, o := range observers {
		o(snap)
	}
}
