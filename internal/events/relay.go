package events

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/internal/status"
)

const (
	relayBuffer         = 64
	relayPublishTimeout = 2 * time.Second
)

// Relay forwards status channel writes to a Sink from its own goroutine.
// Observe never blocks: when the buffer is full the event is dropped,
// matching the lossy semantics of the channel itself.
type Relay struct {
	sink    Sink
	log     logging.Logger
	now     func() time.Time
	queue   chan Event
	dropped atomic.Int64
}

// NewRelay creates a Relay publishing to sink.
func NewRelay(sink Sink, logger logging.Logger) *Relay {
	return &Relay{
		sink:  sink,
		log:   logging.OrNop(logger),
		now:   time.Now,
		queue: make(chan Event, relayBuffer),
	}
}

// Attach registers the relay as an observer of ch.
func (r *Relay) Attach(ch *status.Channel) {
	ch.Observe(r.Observe)
}

// Observe queues a status event. It is a status.Observer.
func (r *Relay) Observe(s status.Snapshot) {
	select {
	case r.queue <- NewStatusEvent(s, r.now()):
	default:
		r.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (r *Relay) Dropped() int64 {
	return r.dropped.Load()
}

// Run publishes queued events until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.queue:
			pctx, cancel := context.WithTimeout(ctx, relayPublishTimeout)
			if err := r.sink.Publish(pctx, ev); err != nil {
				r.log.Warn("events", "publish failed", logging.Fields{
					"type":  ev.EventType(),
					"error": err.Error(),
				})
			}
			cancel()
		}
	}
}
