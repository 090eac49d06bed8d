package models

import "time"

// ActionDescriptor binds one tagged command to the handler that executes it.
type ActionDescriptor struct {
	// Command is the tagged command the descriptor was built from.
	Command TaggedCommand `json:"command"`
	// Handler is the registered handler name. Empty means no-op.
	Handler string `json:"handler,omitempty"`
	// Argument is the command text with the verb stripped.
	Argument string `json:"argument,omitempty"`
}

// NoOp reports whether the descriptor should be skipped by the dispatcher.
func (d ActionDescriptor) NoOp() bool {
	return d.Handler == ""
}

// ActionResult is the outcome of one handler invocation.
type ActionResult struct {
	// Handler is the handler that produced the result.
	Handler string `json:"handler,omitempty"`
	// Success is false when the handler failed or panicked.
	Success bool `json:"success"`
	// Answer holds text for handlers that produce a spoken response.
	Answer string `json:"answer,omitempty"`
	// Err is the failure reason, for logs only.
	Err string `json:"error,omitempty"`
	// Duration is how long the handler ran.
	Duration time.Duration `json:"duration"`
}
