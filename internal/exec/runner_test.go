package exec

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestExecRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	r := NewRunner()
	out, err := r.RunShell(context.Background(), "printf hello")
	if err != nil {
		t.Fatalf("RunShell failed: %v", err)
	}
	if string(out) != "hello" {
		t.Errorf("output = %q, want %q", out, "hello")
	}
}

func TestExecRunner_RunFailure(t *testing.T) {
	r := NewRunner()
	if _, err := r.Run(context.Background(), "definitely-not-a-real-binary-vox"); err == nil {
		t.Error("expected error for missing binary")
	}
	if _, err := r.LookPath("definitely-not-a-real-binary-vox"); err == nil {
		t.Error("expected LookPath error for missing binary")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Fail["pactl"] = errors.New("no pulse")
	r.Missing["espeak"] = true

	if err := r.Start("xdg-open", "https://example.com"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := r.Run(context.Background(), "pactl", "set-sink-mute", "@DEFAULT_SINK@", "toggle"); err == nil {
		t.Error("expected configured failure")
	}
	if _, err := r.LookPath("espeak"); err == nil {
		t.Error("expected missing executable")
	}

	calls := r.Calls()
	if len(calls) != 2 {
		t.Fatalf("len(calls) = %d, want 2", len(calls))
	}
	if got := calls[0].String(); got != "xdg-open https://example.com" {
		t.Errorf("calls[0] = %q", got)
	}
	if calls[1].Name != "pactl" {
		t.Errorf("calls[1].Name = %q, want pactl", calls[1].Name)
	}
}
