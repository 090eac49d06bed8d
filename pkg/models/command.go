package models

import "strings"

// Control verbs that never map to an automation handler.
const (
	VerbGeneral   = "general"
	VerbRealtime  = "realtime"
	VerbExit      = "exit"
	VerbTerminate = "terminate"
)

// TaggedCommand is one classifier output of the form "<verb> <argument>".
type TaggedCommand string

// HasVerb reports whether the command starts with verb at a word boundary.
func (c TaggedCommand) HasVerb(verb string) bool {
	s := string(c)
	if !strings.HasPrefix(s, verb) {
		return false
	}
	return len(s) == len(verb) || s[len(verb)] == ' '
}

// Argument returns the command text after verb, trimmed.
// It returns the whole command when verb is not its prefix.
func (c TaggedCommand) Argument(verb string) string {
	if !c.HasVerb(verb) {
		return strings.TrimSpace(string(c))
	}
	return strings.TrimSpace(string(c)[len(verb):])
}

// String implements fmt.Stringer.
func (c TaggedCommand) String() string {
	return string(c)
}

// Decision is the ordered list of tagged commands produced for one utterance.
// Order follows the order of the sub-intents in the utterance.
type Decision []TaggedCommand

// Any reports whether some command in the decision has verb.
func (d Decision) Any(verb string) bool {
	for _, c := range d {
		if c.HasVerb(verb) {
			return true
		}
	}
	return false
}

// Strings returns the decision as plain strings.
func (d Decision) Strings() []string {
	out := make([]string, len(d))
	for i, c := range d {
		out[i] = string(c)
	}
	return out
}
