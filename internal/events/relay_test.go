package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/vox/internal/status"
	"github.com/ShayCichocki/vox/pkg/models"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingSink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestStatusEvent_JSON(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	ev := NewStatusEvent(status.Snapshot{Status: models.StatusThinking, Mic: true}, at)

	assert.Equal(t, "status", ev.EventType())
	assert.Equal(t, "events.status", Subject(DefaultSubjectPrefix, ev))

	data, err := json.Marshal(ev.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"thinking","label":"Thinking...","mic":true,"occurred_at":"2026-03-14T09:26:53Z"}`, string(data))
}

func TestRelay_ForwardsWrites(t *testing.T) {
	sink := &recordingSink{}
	relay := NewRelay(sink, nil)
	ch := status.New()
	relay.Attach(ch)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Run(ctx)

	ch.SetStatus(models.StatusThinking)
	ch.SetMic(true)

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
	got := sink.snapshot()
	assert.Equal(t, "thinking", got[0].(StatusEvent).Status)
	assert.False(t, got[0].(StatusEvent).Mic)
	assert.True(t, got[1].(StatusEvent).Mic)
}

func TestRelay_ObserveNeverBlocks(t *testing.T) {
	relay := NewRelay(&recordingSink{}, nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < relayBuffer+10; i++ {
			relay.Observe(status.Snapshot{Status: models.StatusReady})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Observe blocked with no consumer")
	}
	assert.Equal(t, int64(10), relay.Dropped())
}

func TestRelay_PublishErrorsAreLogged(t *testing.T) {
	sink := &recordingSink{err: errors.New("no responders")}
	relay := NewRelay(sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Run(ctx)

	relay.Observe(status.Snapshot{Status: models.StatusReady})
	relay.Observe(status.Snapshot{Status: models.StatusAvailable})

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
}
