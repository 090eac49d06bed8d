package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShayCichocki/vox/internal/api"
	"github.com/ShayCichocki/vox/internal/chatlog"
	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/pkg/models"
)

// ErrNoModel is returned when no completer is configured.
var ErrNoModel = errors.New("no chat model configured")

// Options configures the Chatbot and SearchEngine prompts and sampling.
type Options struct {
	Username    string
	Assistant   string
	MaxTokens   int64
	Temperature float64
	Logger      logging.Logger

	// Now is overridable for tests.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Username == "" {
		o.Username = "User"
	}
	if o.Assistant == "" {
		o.Assistant = "Vox"
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = 1024
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	o.Logger = logging.OrNop(o.Logger)
	return o
}

// Chatbot answers general questions using the persisted conversation as
// context.
type Chatbot struct {
	completer api.Completer
	log       *chatlog.Store
	opts      Options
}

// NewChatbot creates a Chatbot.
func NewChatbot(completer api.Completer, log *chatlog.Store, opts Options) *Chatbot {
	return &Chatbot{completer: completer, log: log, opts: opts.withDefaults()}
}

// Answer replies to query and records both turns in the chat log. If the
// attempt fails, the log is reset and the query retried once.
func (b *Chatbot) Answer(ctx context.Context, query string) (string, error) {
	if b.completer == nil {
		return "", ErrNoModel
	}

	answer, err := b.attempt(ctx, query)
	if err == nil {
		return answer, nil
	}

	b.opts.Logger.Warn("chat", "chat attempt failed, resetting log", logging.Fields{
		"query": query,
		"error": err,
	})
	if resetErr := b.log.Reset(); resetErr != nil {
		b.opts.Logger.Error("chat", "failed to reset chat log", logging.Fields{"error": resetErr})
	}

	answer, err = b.attempt(ctx, query)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return answer, nil
}

func (b *Chatbot) attempt(ctx context.Context, query string) (string, error) {
	history, err := b.log.Load()
	if err != nil && !errors.Is(err, chatlog.ErrCorrupt) {
		return "", err
	}

	user := models.ChatMessage{Role: models.RoleUser, Content: query}
	raw, err := b.completer.Complete(ctx, api.CompletionRequest{
		System: []string{
			chatbotPrompt(b.opts.Username, b.opts.Assistant),
			RealtimeInformation(b.opts.Now()),
		},
		Messages:    append(history, user),
		MaxTokens:   b.opts.MaxTokens,
		Temperature: b.opts.Temperature,
	})
	if err != nil {
		return "", err
	}

	answer := cleanAnswer(raw)
	if err := b.log.Append(user, models.ChatMessage{Role: models.RoleAssistant, Content: answer}); err != nil {
		return "", err
	}
	return AnswerModifier(answer), nil
}
