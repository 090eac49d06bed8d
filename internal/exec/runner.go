package exec

import (
	"context"
	"fmt"
	osexec "os/exec"
	"strings"
	"sync"
)

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// NewRunner creates a new ExecRunner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns combined stdout/stderr output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Start launches a command and reaps it in the background.
func (r *ExecRunner) Start(name string, args ...string) error {
	cmd := osexec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// RunShell executes a shell command through "sh -c".
func (r *ExecRunner) RunShell(ctx context.Context, command string) ([]byte, error) {
	return r.Run(ctx, "sh", "-c", command)
}

// LookPath resolves name against PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return osexec.LookPath(name)
}

// Verify ExecRunner implements CommandRunner at compile time.
var _ CommandRunner = (*ExecRunner)(nil)

// Call is one command observed by a Recorder.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Recorder is a CommandRunner that records calls instead of running them.
// Fail maps an executable name to the error its calls return; Missing lists
// executables LookPath cannot find.
type Recorder struct {
	mu      sync.Mutex
	calls   []Call
	Fail    map[string]error
	Missing map[string]bool
	Output  []byte
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Fail: map[string]error{}, Missing: map[string]bool{}}
}

func (r *Recorder) record(name string, args []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Args: append([]string(nil), args...)})
	return r.Fail[name]
}

// Run records the call.
func (r *Recorder) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	if err := r.record(name, args); err != nil {
		return nil, err
	}
	return r.Output, nil
}

// Start records the call.
func (r *Recorder) Start(name string, args ...string) error {
	return r.record(name, args)
}

// RunShell records the call as sh -c.
func (r *Recorder) RunShell(ctx context.Context, command string) ([]byte, error) {
	return r.Run(ctx, "sh", "-c", command)
}

// LookPath succeeds unless name is listed in Missing.
func (r *Recorder) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

var _ CommandRunner = (*Recorder)(nil)
