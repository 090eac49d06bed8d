package main

import (
	"context"
	"fmt"

	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/internal/orchestrator"
	"github.com/ShayCichocki/vox/internal/tui"
	"github.com/ShayCichocki/vox/internal/voice"
)

// eventBufferSize bounds orchestrator events waiting for the TUI.
const eventBufferSize = 100

// runTUI runs the orchestrator behind the interactive TUI. Quitting the
// TUI stops the loop; an exit command quits the TUI.
func runTUI(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	listener := voice.NewTUIListener(cfg.Voice.ListenTimeout)
	emitter := orchestrator.NewEventEmitter(eventBufferSize, nil)
	defer emitter.Close()

	// The program exists before the assistant so the display can reach it.
	var display programRef
	a, err := newAssistant(ctx, cfg, wiring{
		Listener: listener,
		Display:  &display,
		Console:  false,
		Events:   emitter,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	program, _ := tui.NewProgram(tui.Config{
		Status:      a.status,
		Listener:    listener,
		Assistant:   cfg.Assistant.Name,
		RefreshRate: cfg.TUI.RefreshRate,
	})
	display.set(tui.NewProgramDisplay(program))

	go tui.ForwardEvents(ctx, program, emitter.Events())

	if err := a.history.Watch(ctx, func() { program.Send(tui.ChatLogChangedMsg{}) }); err != nil {
		a.log.Warn("main", "chat log watch disabled", logging.Fields{"error": err.Error()})
	}

	orchDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				orchDone <- fmt.Errorf("PANIC in orchestrator: %v", r)
			}
		}()
		err := a.run(ctx, false)
		program.Quit()
		orchDone <- err
	}()

	_, runErr := program.Run()
	cancel()
	orchErr := <-orchDone
	if runErr != nil {
		return fmt.Errorf("run TUI: %w", runErr)
	}
	return orchErr
}

// programRef is a voice.Display whose target is set once the TUI program
// exists. Lines shown before then are dropped.
type programRef struct {
	target voice.Display
}

func (r *programRef) set(d voice.Display) { r.target = d }

func (r *programRef) Show(line voice.Line) {
	if r.target != nil {
		r.target.Show(line)
	}
}

func (r *programRef) Status(label string) {
	if r.target != nil {
		r.target.Status(label)
	}
}
