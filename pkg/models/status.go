package models

// AssistantStatus is the coarse state of the assistant as shown to the user.
type AssistantStatus string

const (
	// StatusReady means the assistant finished a cycle and waits for the mic.
	StatusReady AssistantStatus = "ready"
	// StatusThinking means an utterance is being classified or answered.
	StatusThinking AssistantStatus = "thinking"
	// StatusSearching means a realtime web search is in flight.
	StatusSearching AssistantStatus = "searching"
	// StatusAnswering means an answer is being displayed and spoken.
	StatusAnswering AssistantStatus = "answering"
	// StatusExecuting means automation handlers are running.
	StatusExecuting AssistantStatus = "executing"
	// StatusAvailable means the loop is idle with the mic switched off.
	StatusAvailable AssistantStatus = "available"
)

// Valid returns true if the status is a known value.
func (s AssistantStatus) Valid() bool {
	switch s {
	case StatusReady, StatusThinking, StatusSearching, StatusAnswering, StatusExecuting, StatusAvailable:
		return true
	default:
		return false
	}
}

// Label returns the text shown by the presentation layer.
func (s AssistantStatus) Label() string {
	switch s {
	case StatusReady:
		return "Ready to Perform..."
	case StatusThinking:
		return "Thinking..."
	case StatusSearching:
		return "Searching..."
	case StatusAnswering:
		return "Answering..."
	case StatusExecuting:
		return "Executing..."
	case StatusAvailable:
		return "Available..."
	default:
		return string(s)
	}
}
