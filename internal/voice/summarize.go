package voice

import (
	"context"
	"strings"
	"sync/atomic"
)

const (
	summaryMinSentences = 4
	summaryMinLength    = 250
)

var restOnScreen = []string{
	"The rest of the answer is on the chat screen, please take a look.",
	"You can read the rest of the text on the chat screen.",
	"The remaining part is printed on the chat screen.",
	"Please check the chat screen for the full answer.",
	"I've put the rest on the chat screen for you.",
}

// Summarize returns what should be spoken for text. Long answers are cut
// to their first two sentences followed by a pointer to the chat screen;
// turn selects which pointer line is used.
func Summarize(text string, turn int) string {
	parts := strings.Split(text, ".")
	if len(parts) <= summaryMinSentences || len(text) < summaryMinLength {
		return text
	}
	if turn < 0 {
		turn = -turn
	}
	head := strings.TrimSpace(strings.Join(parts[:2], "."))
	return head + ". " + restOnScreen[turn%len(restOnScreen)]
}

// SummarizingSpeaker shortens long answers before handing them on.
type SummarizingSpeaker struct {
	next Speaker
	turn atomic.Int64
}

// NewSummarizingSpeaker wraps next.
func NewSummarizingSpeaker(next Speaker) *SummarizingSpeaker {
	return &SummarizingSpeaker{next: next}
}

// Speak speaks the summarized text.
func (s *SummarizingSpeaker) Speak(ctx context.Context, text string, abort func() bool) error {
	turn := int(s.turn.Add(1) - 1)
	return s.next.Speak(ctx, Summarize(text, turn), abort)
}
