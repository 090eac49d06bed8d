// Package tui provides the terminal user interface for vox.
//
// The TUI replaces the microphone and speaker with a keyboard and a screen.
// It shows:
//   - The conversation, as "<Speaker> : <Text>" lines
//   - The assistant status label and microphone state
//   - An activity log fed by orchestrator events
//   - An input field whose submissions become utterances
//
// Usage:
//
//	listener := voice.NewTUIListener(cfg.Voice.ListenTimeout)
//	program, app := tui.NewProgram(tui.Config{Status: ch, Listener: listener})
//	display := tui.NewProgramDisplay(program)
//	go tui.ForwardEvents(ctx, program, emitter.Events())
//	_, err := program.Run()
//
// Ctrl+T toggles the microphone, Tab switches focus between the input field
// and the activity log, and Ctrl+C quits.
package tui
