package automation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/vox/pkg/models"
)

func desc(handler, arg string) models.ActionDescriptor {
	return models.ActionDescriptor{
		Command:  models.TaggedCommand(handler + " " + arg),
		Handler:  handler,
		Argument: arg,
	}
}

func TestDispatch_PreservesOrder(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register("a", func(ctx context.Context, arg string) (string, error) {
		time.Sleep(80 * time.Millisecond)
		return "rA:" + arg, nil
	})
	d.Register("b", func(ctx context.Context, arg string) (string, error) {
		return "rB:" + arg, nil
	})
	d.Register("c", func(ctx context.Context, arg string) (string, error) {
		return "rC:" + arg, nil
	})

	results := d.Dispatch(context.Background(), []models.ActionDescriptor{
		desc("a", "1"), desc("b", "2"), desc("c", "3"),
	})

	require.Len(t, results, 3)
	assert.Equal(t, "rA:1", results[0].Answer)
	assert.Equal(t, "rB:2", results[1].Answer)
	assert.Equal(t, "rC:3", results[2].Answer)
}

func TestDispatch_RunsConcurrently(t *testing.T) {
	d := NewDispatcher(nil)

	var running, peak int32
	slow := func(ctx context.Context, arg string) (string, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(100 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return "", nil
	}
	d.Register("slow", slow)

	start := time.Now()
	d.Dispatch(context.Background(), []models.ActionDescriptor{
		desc("slow", "1"), desc("slow", "2"), desc("slow", "3"),
	})
	elapsed := time.Since(start)

	assert.Equal(t, int32(3), atomic.LoadInt32(&peak))
	assert.Less(t, elapsed, 280*time.Millisecond)
}

func TestDispatch_IsolatesFailures(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register("ok", func(ctx context.Context, arg string) (string, error) { return "", nil })
	d.Register("fail", func(ctx context.Context, arg string) (string, error) {
		return "", errors.New("navigation timeout")
	})
	d.Register("panic", func(ctx context.Context, arg string) (string, error) {
		panic("boom")
	})

	results := d.Dispatch(context.Background(), []models.ActionDescriptor{
		desc("ok", "a"), desc("fail", "b"), desc("ok", "c"), desc("panic", "d"), desc("ok", "e"),
	})

	require.Len(t, results, 5)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Err, "navigation timeout")
	assert.True(t, results[2].Success)
	assert.False(t, results[3].Success)
	assert.Contains(t, results[3].Err, "panicked")
	assert.True(t, results[4].Success)
}

func TestDispatch_NoOpAndUnknown(t *testing.T) {
	d := NewDispatcher(nil)
	called := false
	d.Register("open", func(ctx context.Context, arg string) (string, error) {
		called = true
		return "", nil
	})

	results := d.Dispatch(context.Background(), []models.ActionDescriptor{
		{Command: "general hello"},
		desc("dance", "wildly"),
		desc("open", "chrome"),
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].Handler)
	assert.True(t, results[1].Success)
	assert.Equal(t, "dance", results[1].Handler)
	assert.True(t, results[2].Success)
	assert.True(t, called)
}

func TestDispatch_Empty(t *testing.T) {
	d := NewDispatcher(nil)
	assert.Empty(t, d.Dispatch(context.Background(), nil))
}

func TestDispatcher_Handlers(t *testing.T) {
	d := NewDispatcher(nil)
	noop := func(ctx context.Context, arg string) (string, error) { return "", nil }
	d.Register("play", noop)
	d.Register("close", noop)

	assert.Equal(t, []string{"close", "play"}, d.Handlers())
}
