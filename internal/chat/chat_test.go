package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/vox/internal/api"
	"github.com/ShayCichocki/vox/internal/chatlog"
	"github.com/ShayCichocki/vox/pkg/models"
)

var testNow = time.Date(2026, 10, 16, 15, 4, 0, 0, time.UTC)

func newLog(t *testing.T) *chatlog.Store {
	t.Helper()
	return chatlog.New(filepath.Join(t.TempDir(), chatlog.FileName), nil)
}

func TestRealtimeInformation(t *testing.T) {
	got := RealtimeInformation(testNow)
	assert.Equal(t, "Please use this real-time information if needed,\n"+
		"Day: Friday\nDate: 16\nMonth: October\nYear: 2026\n"+
		"Time: 03 hours, 04 minutes\n", got)
}

func TestAnswerModifier(t *testing.T) {
	assert.Equal(t, "one\ntwo\nthree", AnswerModifier("one\n\n  \ntwo\nthree\n"))
	assert.Equal(t, "", AnswerModifier("\n\n"))
}

func TestChatbot_Answer(t *testing.T) {
	log := newLog(t)
	var got api.CompletionRequest
	completer := api.CompleterFunc(func(ctx context.Context, req api.CompletionRequest) (string, error) {
		got = req
		return "Go is a programming language.\n\nIt was made at Google.</s>", nil
	})

	bot := NewChatbot(completer, log, Options{
		Username:  "Ada",
		Assistant: "Jarvis",
		Now:       func() time.Time { return testNow },
	})

	answer, err := bot.Answer(context.Background(), "what is go")
	require.NoError(t, err)
	assert.Equal(t, "Go is a programming language.\nIt was made at Google.", answer)

	require.Len(t, got.System, 2)
	assert.Contains(t, got.System[0], "Ada")
	assert.Contains(t, got.System[0], "Jarvis")
	assert.Contains(t, got.System[1], "Day: Friday")
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "what is go", got.Messages[0].Content)

	msgs, err := log.Load()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Go is a programming language.\n\nIt was made at Google.", msgs[1].Content)
}

func TestChatbot_UsesHistory(t *testing.T) {
	log := newLog(t)
	require.NoError(t, log.Append(
		models.ChatMessage{Role: models.RoleUser, Content: "my name is Ada"},
		models.ChatMessage{Role: models.RoleAssistant, Content: "Nice to meet you, Ada."},
	))

	var count int
	completer := api.CompleterFunc(func(ctx context.Context, req api.CompletionRequest) (string, error) {
		count = len(req.Messages)
		return "Your name is Ada.", nil
	})

	_, err := NewChatbot(completer, log, Options{}).Answer(context.Background(), "what is my name")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestChatbot_CorruptLogRecovers(t *testing.T) {
	log := newLog(t)
	require.NoError(t, os.WriteFile(log.Path(), []byte("{{{"), 0644))

	completer := api.CompleterFunc(func(ctx context.Context, req api.CompletionRequest) (string, error) {
		return "Hello!", nil
	})

	answer, err := NewChatbot(completer, log, Options{}).Answer(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", answer)

	msgs, err := log.Load()
	require.NoError(t, err)
	assert.Equal(t, []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "Hello!"},
	}, msgs)
}

func TestChatbot_ResetsAndRetriesOnce(t *testing.T) {
	log := newLog(t)
	require.NoError(t, log.Append(models.ChatMessage{Role: models.RoleUser, Content: "old"}))

	var calls int32
	completer := api.CompleterFunc(func(ctx context.Context, req api.CompletionRequest) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", errors.New("context too long")
		}
		return "Fresh start.", nil
	})

	answer, err := NewChatbot(completer, log, Options{}).Answer(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Fresh start.", answer)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	msgs, err := log.Load()
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Content)
}

func TestChatbot_GivesUpAfterRetry(t *testing.T) {
	var calls int32
	completer := api.CompleterFunc(func(ctx context.Context, req api.CompletionRequest) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", errors.New("quota exceeded")
	})

	_, err := NewChatbot(completer, newLog(t), Options{}).Answer(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "quota exceeded"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestChatbot_NoModel(t *testing.T) {
	_, err := NewChatbot(nil, newLog(t), Options{}).Answer(context.Background(), "hi")
	assert.True(t, errors.Is(err, ErrNoModel))
}
