// Package exec provides an interface for running OS commands on behalf of
// automation handlers and the speech synthesizer.
package exec

import (
	"context"
)

// CommandRunner defines the interface for running external commands.
// This abstraction allows recording command execution in tests.
type CommandRunner interface {
	// Run executes a command to completion and returns combined stdout/stderr output.
	Run(ctx context.Context, name string, args ...string) (output []byte, err error)

	// Start launches a command without waiting for it, for GUI apps and
	// browsers that outlive the handler.
	Start(name string, args ...string) error

	// RunShell executes a shell command through "sh -c".
	RunShell(ctx context.Context, command string) (output []byte, err error)

	// LookPath reports the resolved path of an executable.
	LookPath(name string) (string, error)
}
