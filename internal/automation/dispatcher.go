// Package automation runs action descriptors concurrently against a set of
// isolated, side-effecting handlers.
package automation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/pkg/models"
)

// HandlerFunc executes one action. It returns an optional spoken answer.
// Handlers own every resource they touch and share no mutable state.
type HandlerFunc func(ctx context.Context, arg string) (answer string, err error)

// Dispatcher fans descriptors out to registered handlers and joins them.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	logger   logging.Logger
}

// NewDispatcher creates a Dispatcher with no handlers.
func NewDispatcher(logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logging.OrNop(logger),
	}
}

// Register adds or replaces the handler for name.
func (d *Dispatcher) Register(name string, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// Handlers returns the registered handler names, sorted.
func (d *Dispatcher) Handlers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Dispatcher) lookup(name string) (HandlerFunc, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handlers[name]
	return h, ok
}

// Dispatch runs every descriptor concurrently and blocks until all have
// finished. Result i always belongs to descs[i]. A failing or panicking
// handler only affects its own result. No-op descriptors and unknown
// handlers produce a successful empty result.
func (d *Dispatcher) Dispatch(ctx context.Context, descs []models.ActionDescriptor) []models.ActionResult {
	results := make([]models.ActionResult, len(descs))

	var wg sync.WaitGroup
	for i, desc := range descs {
		if desc.NoOp() {
			results[i] = models.ActionResult{Success: true}
			continue
		}

		h, ok := d.lookup(desc.Handler)
		if !ok {
			d.logger.Warn("dispatch", "no handler for command", logging.Fields{
				"command": string(desc.Command),
				"handler": desc.Handler,
			})
			results[i] = models.ActionResult{Handler: desc.Handler, Success: true}
			continue
		}

		wg.Add(1)
		go func(i int, desc models.ActionDescriptor, h HandlerFunc) {
			defer wg.Done()
			results[i] = d.run(ctx, desc, h)
		}(i, desc, h)
	}
	wg.Wait()

	return results
}

// run invokes h with panic isolation.
func (d *Dispatcher) run(ctx context.Context, desc models.ActionDescriptor, h HandlerFunc) models.ActionResult {
	start := time.Now()

	var (
		answer string
		err    error
		pc     panics.Catcher
	)
	pc.Try(func() {
		answer, err = h(ctx, desc.Argument)
	})
	if r := pc.Recovered(); r != nil {
		err = fmt.Errorf("handler panicked: %w", r.AsError())
	}

	result := models.ActionResult{
		Handler:  desc.Handler,
		Success:  err == nil,
		Answer:   answer,
		Duration: time.Since(start),
	}

	if err != nil {
		result.Err = err.Error()
		d.logger.Error("dispatch", "handler failed", logging.Fields{
			"handler":  desc.Handler,
			"argument": desc.Argument,
			"error":    err,
		})
	} else {
		d.logger.Info("dispatch", "handler finished", logging.Fields{
			"handler":     desc.Handler,
			"argument":    desc.Argument,
			"duration_ms": result.Duration.Milliseconds(),
		})
	}

	return result
}
