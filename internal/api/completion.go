package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/vox/pkg/models"
)

// CompletionRequest is one chat-completion call.
type CompletionRequest struct {
	// System holds system blocks, sent in order.
	System []string
	// Messages is the conversation, oldest first.
	Messages []models.ChatMessage
	// MaxTokens caps the response length. Defaults to 1024.
	MaxTokens int64
	// Temperature is the sampling temperature. Negative means provider default.
	Temperature float64
}

// Completer produces a text completion. Implementations stream the response
// and return the concatenated text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (string, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}

// Complete streams a completion and returns the concatenated text deltas.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  toMessageParams(req.Messages),
	}
	for _, s := range req.System {
		if s == "" {
			continue
		}
		params.System = append(params.System, anthropic.TextBlockParam{Text: s})
	}
	if req.Temperature >= 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	stream := c.sdk().Messages.NewStreaming(ctx, params)
	defer stream.Close()

	var (
		result        strings.Builder
		input, output int64
	)
	for stream.Next() {
		switch event := stream.Current().AsAny().(type) {
		case anthropic.MessageStartEvent:
			input = event.Message.Usage.InputTokens
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := event.Delta.AsAny().(anthropic.TextDelta); ok {
				result.WriteString(delta.Text)
			}
		case anthropic.MessageDeltaEvent:
			output = event.Usage.OutputTokens
		}
	}
	if err := stream.Err(); err != nil {
		c.tracker.Fail()
		return "", fmt.Errorf("API stream failed: %w", err)
	}

	c.tracker.Add(input, output)
	return result.String(), nil
}

func toMessageParams(msgs []models.ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == models.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}

// Unavailable is a Completer that always fails. It stands in when no API
// credentials are configured so every caller takes its fallback path.
type Unavailable struct {
	Reason error
}

// Complete implements Completer.
func (u Unavailable) Complete(context.Context, CompletionRequest) (string, error) {
	if u.Reason != nil {
		return "", u.Reason
	}
	return "", fmt.Errorf("completion service not configured")
}
