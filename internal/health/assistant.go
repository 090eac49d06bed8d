// Package health answers healthcare requests: medication reminders and
// doses, symptoms, appointments, contractions and emergencies.
package health

import "context"

// UnavailableMessage is the answer when healthcare support is disabled.
const UnavailableMessage = "Healthcare features are not available at the moment."

// Assistant handles one healthcare command. Command is the tagged command
// chosen by the classifier; utterance is what the user actually said.
type Assistant interface {
	Handle(ctx context.Context, command, utterance string) (string, error)
}

// Unavailable is an Assistant for installs without healthcare support.
type Unavailable struct{}

// Handle always reports that healthcare is unavailable.
func (Unavailable) Handle(context.Context, string, string) (string, error) {
	return UnavailableMessage, nil
}
