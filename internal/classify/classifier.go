// Package classify turns an utterance into an ordered Decision of tagged
// commands using a hosted chat model, with a deterministic keyword fallback.
package classify

import (
	"context"
	"strings"

	"github.com/ShayCichocki/vox/internal/api"
	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/internal/vocab"
	"github.com/ShayCichocki/vox/pkg/models"
)

// placeholder is what the model emits when it echoes a template verbatim.
const placeholder = "(query)"

// DefaultMaxRetries bounds re-asking the model after a placeholder reply.
const DefaultMaxRetries = 2

// Options configures a Classifier.
type Options struct {
	// Vocabulary is the verb whitelist. Defaults to vocab.Default().
	Vocabulary *vocab.Vocabulary
	// MaxRetries is how many extra attempts follow a placeholder reply.
	// Negative disables retries.
	MaxRetries int
	// Temperature is passed to the model.
	Temperature float64
	// Logger receives fallback and retry diagnostics.
	Logger logging.Logger
}

// Classifier produces Decisions. It holds no per-conversation state; the
// caller passes the Transcript explicitly.
type Classifier struct {
	completer   api.Completer
	vocab       *vocab.Vocabulary
	maxRetries  int
	temperature float64
	logger      logging.Logger
}

// New creates a Classifier. A nil completer makes every call use the
// keyword fallback.
func New(completer api.Completer, opts Options) *Classifier {
	v := opts.Vocabulary
	if v == nil {
		v = vocab.Default()
	}
	retries := opts.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Classifier{
		completer:   completer,
		vocab:       v,
		maxRetries:  retries,
		temperature: opts.Temperature,
		logger:      logging.OrNop(opts.Logger),
	}
}

// Vocabulary returns the whitelist the classifier filters against.
func (c *Classifier) Vocabulary() *vocab.Vocabulary {
	return c.vocab
}

// Classify returns the Decision for utterance. It never fails: transport
// errors, empty model output and repeated placeholder replies all end in the
// keyword fallback. The utterance is appended to tr.
func (c *Classifier) Classify(ctx context.Context, utterance string, tr *Transcript) models.Decision {
	utterance = strings.TrimSpace(utterance)
	tr.Append(models.RoleUser, utterance)

	if c.completer == nil {
		return c.fallback(utterance, "no completer configured")
	}

	req := api.CompletionRequest{
		System:      []string{preamble},
		Messages:    append(append([]models.ChatMessage(nil), examples...), models.ChatMessage{Role: models.RoleUser, Content: utterance}),
		MaxTokens:   256,
		Temperature: c.temperature,
	}

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.completer.Complete(ctx, req)
		if err != nil {
			c.logger.Warn("classify", "model call failed", logging.Fields{
				"error":   err,
				"attempt": attempt,
			})
			return c.fallback(utterance, "model error")
		}

		decision := c.Filter(raw)
		if len(decision) == 0 {
			c.logger.Warn("classify", "model reply had no whitelisted commands", logging.Fields{"reply": raw})
			return c.fallback(utterance, "empty decision")
		}
		if !hasPlaceholder(decision) {
			c.logger.Debug("classify", "decision", logging.Fields{"decision": decision.Strings()})
			return decision
		}

		c.logger.Info("classify", "model echoed placeholder, retrying", logging.Fields{
			"attempt": attempt,
			"reply":   raw,
		})
	}

	return c.fallback(utterance, "placeholder retries exhausted")
}

// Filter splits a raw model reply into tagged commands and keeps only the
// ones starting with a whitelisted verb.
func (c *Classifier) Filter(raw string) models.Decision {
	raw = strings.NewReplacer("\r", "", "\n", "").Replace(raw)

	var out models.Decision
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.Trim(strings.TrimSpace(piece), "\"'`")
		if piece == "" {
			continue
		}
		cmd := normalizeVerb(c.vocab, piece)
		if c.vocab.Allowed(cmd) {
			out = append(out, cmd)
		}
	}
	return out
}

// normalizeVerb lowercases the verb of piece while leaving the argument as
// the model wrote it.
func normalizeVerb(v *vocab.Vocabulary, piece string) models.TaggedCommand {
	lower := strings.ToLower(piece)
	verb, ok := v.Match(models.TaggedCommand(lower))
	if !ok || len(lower) != len(piece) {
		return models.TaggedCommand(piece)
	}
	return models.TaggedCommand(verb + piece[len(verb):])
}

func hasPlaceholder(d models.Decision) bool {
	for _, cmd := range d {
		if strings.Contains(string(cmd), placeholder) {
			return true
		}
	}
	return false
}

func (c *Classifier) fallback(utterance, reason string) models.Decision {
	d := Fallback(utterance)
	c.logger.Info("classify", "using keyword fallback", logging.Fields{
		"reason":   reason,
		"decision": d.Strings(),
	})
	return d
}

var fallbackRules = []struct {
	keywords []string
	verb     string
	strip    []string
	keepAll  bool
}{
	{keywords: []string{"open", "launch", "start"}, verb: "open", strip: []string{"open", "launch", "start"}},
	{keywords: []string{"close", "exit", "quit"}, verb: "close", strip: []string{"close", "exit", "quit"}},
	{keywords: []string{"search", "google", "find"}, verb: "google search", keepAll: true},
	{keywords: []string{"play", "music", "song"}, verb: "play", strip: []string{"play"}},
}

// Fallback is the deterministic keyword tagger. It is a pure function of
// the utterance and always returns exactly one command.
func Fallback(utterance string) models.Decision {
	utterance = strings.TrimSpace(utterance)
	words := strings.Fields(utterance)

	for _, rule := range fallbackRules {
		if !containsWord(words, rule.keywords) {
			continue
		}
		arg := utterance
		if !rule.keepAll {
			arg = strings.Join(withoutWords(words, rule.strip), " ")
		}
		// Handlers receive the argument verbatim, so sentence punctuation
		// added to the utterance must not reach them.
		arg = strings.TrimRight(arg, trailingPunct)
		return models.Decision{tag(rule.verb, arg)}
	}
	return models.Decision{tag(models.VerbGeneral, utterance)}
}

func tag(verb, arg string) models.TaggedCommand {
	return models.TaggedCommand(strings.TrimSpace(verb + " " + strings.TrimSpace(arg)))
}

// trailingPunct is stripped from the end of fallback arguments.
const trailingPunct = ".,!?;:"

func normalizeWord(w string) string {
	return strings.ToLower(strings.Trim(w, ".,!?;:\"'"))
}

func containsWord(words, keywords []string) bool {
	for _, w := range words {
		n := normalizeWord(w)
		for _, k := range keywords {
			if n == k {
				return true
			}
		}
	}
	return false
}

func withoutWords(words, drop []string) []string {
	var out []string
	for _, w := range words {
		n := normalizeWord(w)
		skip := false
		for _, d := range drop {
			if n == d {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, w)
		}
	}
	return out
}
