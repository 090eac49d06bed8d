// Package orchestrator runs the conversation loop: it captures an
// utterance, classifies it, dispatches automation, delegates domain
// requests, answers realtime and general queries, and keeps the shared
// status channel current for the presentation layer.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"

	"github.com/ShayCichocki/vox/internal/classify"
	"github.com/ShayCichocki/vox/internal/command"
	"github.com/ShayCichocki/vox/internal/health"
	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/internal/state"
	"github.com/ShayCichocki/vox/internal/status"
	"github.com/ShayCichocki/vox/internal/vocab"
	"github.com/ShayCichocki/vox/internal/voice"
	"github.com/ShayCichocki/vox/pkg/models"
)

// Outcome is how a cycle ended. Values match the journal outcomes.
type Outcome = state.Outcome

const (
	OutcomeHandled = state.OutcomeHandled
	OutcomeExit    = state.OutcomeExit
	OutcomeFailed  = state.OutcomeFailed
)

// Branch names the path a cycle took.
type Branch string

const (
	BranchEmpty      Branch = "empty"
	BranchAutomation Branch = "automation"
	BranchHealth     Branch = "health"
	BranchEnhanced   Branch = "enhanced"
	BranchRealtime   Branch = "realtime"
	BranchChat       Branch = "chat"
	BranchExit       Branch = "exit"
	BranchNone       Branch = "none"
)

// Fixed user-facing sentences.
const (
	ApologyMessage  = "Sorry, I didn't catch that. Please try again."
	TroubleMessage  = "I'm having trouble answering right now. Please try again in a moment."
	FarewellQuery   = "Okay, GoodBye!!"
	FarewellMessage = "Goodbye! Have a great day."
)

// Classifier produces a Decision for an utterance.
type Classifier interface {
	Classify(ctx context.Context, utterance string, tr *classify.Transcript) models.Decision
}

// Dispatcher runs automation descriptors concurrently.
type Dispatcher interface {
	Dispatch(ctx context.Context, descs []models.ActionDescriptor) []models.ActionResult
}

// Answerer answers a text query. The chatbot, the realtime search engine
// and the enhanced-feature service all satisfy it.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Journal records cycles.
type Journal interface {
	BeginCycle(ctx context.Context, c *state.Cycle) error
	FinishCycle(ctx context.Context, c *state.Cycle) error
}

// History is the persisted conversation shown at startup.
type History interface {
	Load() ([]models.ChatMessage, error)
}

// defaultTranscriptLimit bounds the classifier context when no transcript
// is supplied.
const defaultTranscriptLimit = 40

// Orchestrator coordinates one conversation.
type Orchestrator struct {
	listener   voice.Listener
	classifier Classifier
	dispatcher Dispatcher
	chatbot    Answerer
	status     *status.Channel

	opts   orchestratorOptions
	parser *command.Parser
	log    logging.Logger
}

// New creates an Orchestrator.
func New(req RequiredConfig, opts ...Option) (*Orchestrator, error) {
	switch {
	case req.Listener == nil:
		return nil, errors.New("orchestrator: listener is required")
	case req.Classifier == nil:
		return nil, errors.New("orchestrator: classifier is required")
	case req.Dispatcher == nil:
		return nil, errors.New("orchestrator: dispatcher is required")
	case req.Chatbot == nil:
		return nil, errors.New("orchestrator: chatbot is required")
	case req.Status == nil:
		return nil, errors.New("orchestrator: status channel is required")
	}

	o := orchestratorOptions{
		username:  "User",
		assistant: "Vox",
		idlePoll:  100 * time.Millisecond,
		newID:     func() string { return uuid.NewString() },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.vocabulary == nil {
		o.vocabulary = vocab.Default()
	}
	if o.transcript == nil {
		o.transcript = classify.NewTranscript(defaultTranscriptLimit)
	}
	if o.health == nil {
		o.health = health.Unavailable{}
	}
	if o.speaker == nil {
		o.speaker = voice.NopSpeaker{}
	}
	if o.display == nil {
		o.display = voice.DisplayFunc(func(voice.Line) {})
	}

	return &Orchestrator{
		listener:   req.Listener,
		classifier: req.Classifier,
		dispatcher: req.Dispatcher,
		chatbot:    req.Chatbot,
		status:     req.Status,
		opts:       o,
		parser:     command.NewParser(o.vocabulary),
		log:        logging.OrNop(o.logger),
	}, nil
}

// Transcript returns the transcript shared with the classifier.
func (o *Orchestrator) Transcript() *classify.Transcript {
	return o.opts.transcript
}

// Initialize prepares the first run: the mic starts off and the display
// shows the stored conversation, or a greeting when there is none.
func (o *Orchestrator) Initialize() {
	o.status.SetMic(false)
	o.status.SetStatus(models.StatusReady)

	var msgs []models.ChatMessage
	if o.opts.history != nil {
		var err error
		msgs, err = o.opts.history.Load()
		if err != nil {
			o.log.Warn("orchestrator", "could not load chat history", logging.Fields{"error": err.Error()})
		}
	}

	if len(msgs) == 0 {
		o.showUser("Hello " + o.opts.assistant + ", how are you?")
		o.showAssistant("Welcome " + o.opts.username + ". I am doing well. How may I help you?")
		return
	}
	for _, m := range msgs {
		if m.Role == models.RoleUser {
			o.showUser(m.Content)
		} else {
			o.showAssistant(m.Content)
		}
	}
}

// Run is the mic-gated loop. It returns nil after an exit cycle, or the
// context error on cancellation. Listener errors other than timeouts end
// the loop as well.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !o.status.GetMic() {
			if o.status.GetStatus() != models.StatusAvailable {
				o.status.SetStatus(models.StatusAvailable)
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(o.opts.idlePoll):
			}
			continue
		}

		outcome, err := o.RunCycle(ctx)
		if err != nil {
			return err
		}
		if outcome == OutcomeExit {
			return nil
		}
	}
}

// RunCycle handles one utterance. Whatever happens, including a panic in a
// collaborator, the status returns to Ready and the mic is re-enabled.
func (o *Orchestrator) RunCycle(ctx context.Context) (outcome Outcome, err error) {
	defer func() {
		o.status.SetStatus(models.StatusReady)
		o.status.SetMic(true)
	}()

	o.status.SetStatus(models.StatusReady)
	raw, err := o.listener.Listen(ctx)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("listen: %w", err)
	}

	c := &cycle{
		rec: state.Cycle{
			ID:        o.opts.newID(),
			Utterance: QueryModifier(raw),
			StartedAt: o.opts.now(),
		},
	}
	o.begin(ctx, c)

	if recovered := panics.Try(func() { outcome = o.handle(ctx, c) }); recovered != nil {
		perr := recovered.AsError()
		o.log.Error("orchestrator", "cycle panicked", logging.Fields{
			"cycle": c.rec.ID,
			"error": perr.Error(),
		})
		c.fail(perr)
		outcome = OutcomeFailed
	}

	o.finish(ctx, c, outcome)
	return outcome, nil
}

// cycle carries the journal record through the branches.
type cycle struct {
	rec state.Cycle
}

func (c *cycle) fail(err error) {
	if c.rec.Error == "" {
		c.rec.Error = err.Error()
	}
}

func (o *Orchestrator) begin(ctx context.Context, c *cycle) {
	o.emit(OrchestratorEvent{Type: EventCycleStarted, CycleID: c.rec.ID, Message: c.rec.Utterance})
	if o.opts.journal == nil {
		return
	}
	if err := o.opts.journal.BeginCycle(ctx, &c.rec); err != nil {
		o.log.Warn("orchestrator", "journal begin failed", logging.Fields{"error": err.Error()})
	}
}

func (o *Orchestrator) finish(ctx context.Context, c *cycle, outcome Outcome) {
	c.rec.Outcome = outcome
	c.rec.Duration = o.opts.now().Sub(c.rec.StartedAt)

	o.log.Info("orchestrator", "cycle finished", logging.Fields{
		"cycle":    c.rec.ID,
		"branch":   c.rec.Branch,
		"outcome":  string(outcome),
		"duration": c.rec.Duration.String(),
	})
	o.emit(OrchestratorEvent{
		Type:     EventCycleCompleted,
		CycleID:  c.rec.ID,
		Branch:   Branch(c.rec.Branch),
		Message:  c.rec.Answer,
		Duration: c.rec.Duration,
	})

	if o.opts.journal == nil {
		return
	}
	// The cycle context may already be cancelled; the record is still wanted.
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := o.opts.journal.FinishCycle(jctx, &c.rec); err != nil {
		o.log.Warn("orchestrator", "journal finish failed", logging.Fields{"error": err.Error()})
	}
}

func (o *Orchestrator) emit(e OrchestratorEvent) {
	if o.opts.emitter != nil {
		o.opts.emitter.Emit(e)
	}
}

func (o *Orchestrator) showUser(text string) {
	o.opts.display.Show(voice.Line{Role: models.RoleUser, Speaker: o.opts.username, Text: text})
}

func (o *Orchestrator) showAssistant(text string) {
	o.opts.display.Show(voice.Line{Role: models.RoleAssistant, Speaker: o.opts.assistant, Text: text})
}

// respond shows and speaks an answer. Speech stops early if the mic is
// switched off from the presentation layer.
func (o *Orchestrator) respond(ctx context.Context, c *cycle, answer string) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return
	}
	if c.rec.Answer == "" {
		c.rec.Answer = answer
	} else {
		c.rec.Answer += "\n" + answer
	}

	o.showAssistant(answer)
	o.emit(OrchestratorEvent{Type: EventAnswer, CycleID: c.rec.ID, Message: answer})

	abort := func() bool { return !o.status.GetMic() }
	if err := o.opts.speaker.Speak(ctx, answer, abort); err != nil {
		o.log.Warn("orchestrator", "speech failed", logging.Fields{"error": err.Error()})
	}
}
