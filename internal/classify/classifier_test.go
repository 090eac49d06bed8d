package classify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/vox/internal/api"
	"github.com/ShayCichocki/vox/internal/vocab"
	"github.com/ShayCichocki/vox/pkg/models"
)

// scripted replays replies in order and repeats the last one.
type scripted struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
	last    api.CompletionRequest
}

func (s *scripted) Complete(_ context.Context, req api.CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = req
	if s.err != nil {
		return "", s.err
	}
	i := s.calls - 1
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	return s.replies[i], nil
}

func TestClassify_ScenarioA(t *testing.T) {
	fake := &scripted{replies: []string{"open chrome, google search cats"}}
	c := New(fake, Options{})

	d := c.Classify(context.Background(), "open chrome and search for cats", NewTranscript(0))

	assert.Equal(t, models.Decision{"open chrome", "google search cats"}, d)
	assert.Equal(t, 1, fake.calls)
}

func TestClassify_ScenarioB(t *testing.T) {
	fake := &scripted{replies: []string{"realtime who is the prime minister"}}
	c := New(fake, Options{})

	d := c.Classify(context.Background(), "who is the prime minister", nil)

	assert.Equal(t, models.Decision{"realtime who is the prime minister"}, d)
}

func TestClassify_ScenarioC(t *testing.T) {
	fake := &scripted{replies: []string{"exit"}}
	c := New(fake, Options{})

	assert.Equal(t, models.Decision{"exit"}, c.Classify(context.Background(), "goodbye", nil))
}

func TestClassify_SendsPreambleExamplesAndUtterance(t *testing.T) {
	fake := &scripted{replies: []string{"general hi"}}
	c := New(fake, Options{Temperature: 0.3})

	c.Classify(context.Background(), "  hi  ", nil)

	require.Len(t, fake.last.System, 1)
	assert.Contains(t, fake.last.System[0], "request router")
	require.Len(t, fake.last.Messages, len(examples)+1)
	assert.Equal(t, models.ChatMessage{Role: models.RoleUser, Content: "hi"}, fake.last.Messages[len(examples)])
	assert.Equal(t, 0.3, fake.last.Temperature)
}

func TestClassify_FiltersNonWhitelisted(t *testing.T) {
	fake := &scripted{replies: []string{"Sure, open notepad\n, bake a cake,  Close Spotify , general what is go"}}
	c := New(fake, Options{})

	d := c.Classify(context.Background(), "whatever", nil)

	assert.Equal(t, models.Decision{"open notepad", "close Spotify", "general what is go"}, d)
}

func TestClassify_RetriesOnPlaceholder(t *testing.T) {
	fake := &scripted{replies: []string{"general (query)", "general what is go"}}
	c := New(fake, Options{MaxRetries: 2})

	d := c.Classify(context.Background(), "what is go", nil)

	assert.Equal(t, models.Decision{"general what is go"}, d)
	assert.Equal(t, 2, fake.calls)
}

func TestClassify_RetryCapFallsBack(t *testing.T) {
	fake := &scripted{replies: []string{"general (query)"}}
	c := New(fake, Options{MaxRetries: 2})

	d := c.Classify(context.Background(), "launch the terminal", nil)

	assert.Equal(t, 3, fake.calls, "one attempt plus two retries")
	assert.Equal(t, models.Decision{"open the terminal"}, d)
}

func TestClassify_NegativeRetriesMeansSingleAttempt(t *testing.T) {
	fake := &scripted{replies: []string{"general (query)"}}
	c := New(fake, Options{MaxRetries: -1})

	c.Classify(context.Background(), "hello", nil)

	assert.Equal(t, 1, fake.calls)
}

func TestClassify_TransportFailureFallsBack(t *testing.T) {
	fake := &scripted{err: errors.New("429 rate limited")}
	c := New(fake, Options{})

	d := c.Classify(context.Background(), "play some music", nil)

	assert.Equal(t, models.Decision{"play some music"}, d)
	assert.Equal(t, 1, fake.calls)
}

func TestClassify_EmptyReplyFallsBack(t *testing.T) {
	fake := &scripted{replies: []string{"I am not sure."}}
	c := New(fake, Options{})

	assert.Equal(t, models.Decision{"general tell me a story"}, c.Classify(context.Background(), "tell me a story", nil))
}

func TestClassify_NilCompleter(t *testing.T) {
	c := New(nil, Options{})
	assert.Equal(t, models.Decision{"general how are you"}, c.Classify(context.Background(), "how are you", nil))
}

func TestClassify_AppendsToTranscript(t *testing.T) {
	tr := NewTranscript(0)
	c := New(nil, Options{})

	c.Classify(context.Background(), "first", tr)
	c.Classify(context.Background(), "second", tr)

	assert.Equal(t, []models.ChatMessage{
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleUser, Content: "second"},
	}, tr.Messages())
}

func TestClassify_AlwaysNonEmptyAndWhitelisted(t *testing.T) {
	v := vocab.Default()
	failing := New(&scripted{err: errors.New("down")}, Options{})
	placeholderOnly := New(&scripted{replies: []string{"open (query), general (query)"}}, Options{})
	junk := New(&scripted{replies: []string{",,, ,"}}, Options{})

	utterances := []string{
		"", "   ", "open chrome", "close it", "quit", "find my keys", "play a song",
		"what's up", "exit", "start the music and search for jazz", "ÜBER cool",
	}

	for _, c := range []*Classifier{failing, placeholderOnly, junk} {
		for _, u := range utterances {
			d := c.Classify(context.Background(), u, nil)
			require.NotEmpty(t, d, "utterance %q", u)
			for _, cmd := range d {
				assert.True(t, v.Allowed(cmd), "command %q from %q is not whitelisted", cmd, u)
			}
		}
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		utterance string
		want      models.TaggedCommand
	}{
		{"open chrome", "open chrome"},
		{"Please launch Spotify", "open Please Spotify"},
		{"start", "open"},
		{"close notepad", "close notepad"},
		{"quit the game", "close the game"},
		{"search for cats", "google search search for cats"},
		{"find my phone", "google search find my phone"},
		{"play despacito", "play despacito"},
		{"some music please", "play some music please"},
		{"who are you", "general who are you"},
		{"restart everything", "general restart everything"},
		{"", "general"},
		{"Open notepad.", "open notepad"},
		{"Close notepad!", "close notepad"},
		{"Play despacito?", "play despacito"},
		{"Search for cats.", "google search Search for cats"},
		{"Who are you?", "general Who are you?"},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, models.Decision{tt.want}, Fallback(tt.utterance))
		})
	}
}

func TestFallback_Idempotent(t *testing.T) {
	c := New(&scripted{err: errors.New("offline")}, Options{})

	for _, u := range []string{"open chrome and search for cats", "hello there", "play jazz"} {
		first := c.Classify(context.Background(), u, nil)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Classify(context.Background(), u, nil))
		}
	}
}

func TestFilter_KeepsOrder(t *testing.T) {
	c := New(nil, Options{})

	d := c.Filter("system volume up, open spotify, play lofi beats, screenshot")

	assert.Equal(t, models.Decision{"system volume up", "open spotify", "play lofi beats", "screenshot"}, d)
}

func TestTranscript_Limit(t *testing.T) {
	tr := NewTranscript(2)
	tr.Append(models.RoleUser, "a")
	tr.Append(models.RoleAssistant, "b")
	tr.Append(models.RoleUser, "c")
	tr.Append(models.RoleUser, "")

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, "b", tr.Messages()[0].Content)

	var nilTr *Transcript
	nilTr.Append(models.RoleUser, "ignored")
	assert.Equal(t, 0, nilTr.Len())
	assert.Nil(t, nilTr.Messages())
}
