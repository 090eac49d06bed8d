package classify

import (
	"sync"

	"github.com/ShayCichocki/vox/pkg/models"
)

// DefaultTranscriptSize is the number of messages a Transcript keeps.
const DefaultTranscriptSize = 40

// Transcript is the running record of what the user asked during this
// process. The orchestrator owns one and passes it to every Classify call;
// the content writer reads it as context. Safe for concurrent use.
type Transcript struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	limit    int
}

// NewTranscript creates a transcript keeping at most limit messages.
// A limit <= 0 uses DefaultTranscriptSize.
func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = DefaultTranscriptSize
	}
	return &Transcript{limit: limit}
}

// Append adds a message, dropping the oldest when full.
func (t *Transcript) Append(role models.Role, content string) {
	if t == nil || content == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, models.ChatMessage{Role: role, Content: content})
	if over := len(t.messages) - t.limit; over > 0 {
		t.messages = append([]models.ChatMessage(nil), t.messages[over:]...)
	}
}

// Messages returns a copy of the transcript, oldest first.
func (t *Transcript) Messages() []models.ChatMessage {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.ChatMessage(nil), t.messages...)
}

// Len returns the number of stored messages.
func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
