package voice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShayCichocki/vox/internal/exec"
	"github.com/ShayCichocki/vox/internal/logging"
)

// abortPoll is how often a running synthesizer checks its abort func.
const abortPoll = 100 * time.Millisecond

// ErrNoSynthesizer is returned when no speech tool is installed.
var ErrNoSynthesizer = errors.New("no speech synthesizer found")

// Speaker speaks text. abort is polled while speech is playing; when it
// returns true playback stops early. abort may be nil.
type Speaker interface {
	Speak(ctx context.Context, text string, abort func() bool) error
}

// NopSpeaker discards everything.
type NopSpeaker struct{}

// Speak does nothing.
func (NopSpeaker) Speak(context.Context, string, func() bool) error { return nil }

// candidates are tried in order by ExecSpeaker.
var candidates = []string{"say", "espeak-ng", "espeak", "spd-say"}

// ExecSpeaker speaks through an installed command line synthesizer.
type ExecSpeaker struct {
	runner  exec.CommandRunner
	command string
	voice   string
	log     logging.Logger
}

// NewExecSpeaker picks the first available synthesizer. If command is set
// it is used instead of probing.
func NewExecSpeaker(runner exec.CommandRunner, command, voice string, logger logging.Logger) (*ExecSpeaker, error) {
	if command == "" {
		for _, c := range candidates {
			if _, err := runner.LookPath(c); err == nil {
				command = c
				break
			}
		}
	}
	if command == "" {
		return nil, ErrNoSynthesizer
	}
	return &ExecSpeaker{runner: runner, command: command, voice: voice, log: logging.OrNop(logger)}, nil
}

// Command returns the synthesizer in use.
func (s *ExecSpeaker) Command() string {
	return s.command
}

func (s *ExecSpeaker) args(text string) []string {
	switch s.command {
	case "say":
		if s.voice != "" {
			return []string{"-v", s.voice, text}
		}
	case "espeak", "espeak-ng":
		if s.voice != "" {
			return []string{"-v", s.voice, text}
		}
	case "spd-say":
		// spd-say returns immediately unless told to wait.
		if s.voice != "" {
			return []string{"--wait", "-y", s.voice, text}
		}
		return []string{"--wait", text}
	}
	return []string{text}
}

// Speak runs the synthesizer and kills it if abort fires first.
func (s *ExecSpeaker) Speak(ctx context.Context, text string, abort func() bool) error {
	if text == "" {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := s.runner.Run(runCtx, s.command, s.args(text)...)
		done <- err
	}()

	ticker := time.NewTicker(abortPoll)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if err != nil && runCtx.Err() == nil {
				return fmt.Errorf("%s: %w", s.command, err)
			}
			return nil
		case <-ticker.C:
			if abort != nil && abort() {
				s.log.Debug("voice", "speech aborted", nil)
				cancel()
				<-done
				return nil
			}
		}
	}
}
