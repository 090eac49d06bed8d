// Package voice holds the speech capture and synthesis collaborators and
// the console display used when no TUI is running.
package voice

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

// DefaultListenTimeout bounds a single Listen call.
const DefaultListenTimeout = 30 * time.Second

// Listener captures one utterance. It returns "" on timeout or when
// nothing usable was heard; errors are reserved for a closed source.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// ConsoleListener reads utterances line by line from a reader.
type ConsoleListener struct {
	timeout time.Duration

	once  sync.Once
	src   io.Reader
	lines chan string
	err   error
}

// NewConsoleListener reads from r. A zero timeout uses DefaultListenTimeout.
func NewConsoleListener(r io.Reader, timeout time.Duration) *ConsoleListener {
	if timeout <= 0 {
		timeout = DefaultListenTimeout
	}
	return &ConsoleListener{timeout: timeout, src: r, lines: make(chan string)}
}

func (l *ConsoleListener) start() {
	go func() {
		scanner := bufio.NewScanner(l.src)
		for scanner.Scan() {
			l.lines <- scanner.Text()
		}
		l.err = scanner.Err()
		if l.err == nil {
			l.err = io.EOF
		}
		close(l.lines)
	}()
}

// Listen waits for the next line. It returns io.EOF once the reader is
// exhausted.
func (l *ConsoleListener) Listen(ctx context.Context) (string, error) {
	l.once.Do(l.start)

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", nil
	case line, ok := <-l.lines:
		if !ok {
			return "", l.err
		}
		return strings.TrimSpace(line), nil
	}
}

// TUIListener receives typed submissions from the presentation layer.
type TUIListener struct {
	timeout time.Duration
	input   chan string
}

// NewTUIListener creates a listener fed through Submit.
func NewTUIListener(timeout time.Duration) *TUIListener {
	if timeout <= 0 {
		timeout = DefaultListenTimeout
	}
	return &TUIListener{timeout: timeout, input: make(chan string, 1)}
}

// Submit hands text to a pending or future Listen. It reports false when a
// previous submission has not been consumed yet.
func (l *TUIListener) Submit(text string) bool {
	select {
	case l.input <- text:
		return true
	default:
		return false
	}
}

// Listen waits for the next submission.
func (l *TUIListener) Listen(ctx context.Context) (string, error) {
	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", nil
	case text := <-l.input:
		return strings.TrimSpace(text), nil
	}
}
