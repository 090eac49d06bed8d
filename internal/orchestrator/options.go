package orchestrator

import (
	"time"

	"github.com/ShayCichocki/vox/internal/classify"
	"github.com/ShayCichocki/vox/internal/health"
	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/internal/status"
	"github.com/ShayCichocki/vox/internal/vocab"
	"github.com/ShayCichocki/vox/internal/voice"
)

// RequiredConfig contains the collaborators every Orchestrator needs.
// All fields are required and have no defaults.
type RequiredConfig struct {
	// Listener captures utterances.
	Listener voice.Listener
	// Classifier turns utterances into Decisions.
	Classifier Classifier
	// Dispatcher runs automation descriptors.
	Dispatcher Dispatcher
	// Chatbot answers general queries and the farewell.
	Chatbot Answerer
	// Status is the channel shared with the presentation layer.
	Status *status.Channel
}

// Option configures an Orchestrator. Use With* functions to create Options.
type Option func(*orchestratorOptions)

// orchestratorOptions holds all optional configuration.
type orchestratorOptions struct {
	username   string
	assistant  string
	idlePoll   time.Duration
	vocabulary *vocab.Vocabulary
	transcript *classify.Transcript
	search     Answerer
	enhanced   Answerer
	health     health.Assistant
	speaker    voice.Speaker
	display    voice.Display
	journal    Journal
	history    History
	emitter    *EventEmitter
	logger     logging.Logger
	newID      func() string
	now        func() time.Time
}

// WithNames sets the user and assistant names used on screen.
func WithNames(username, assistant string) Option {
	return func(o *orchestratorOptions) {
		if username != "" {
			o.username = username
		}
		if assistant != "" {
			o.assistant = assistant
		}
	}
}

// WithIdlePoll sets how long Run sleeps while the mic is off.
func WithIdlePoll(d time.Duration) Option {
	return func(o *orchestratorOptions) {
		if d > 0 {
			o.idlePoll = d
		}
	}
}

// WithVocabulary sets the verb whitelist used to route commands.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return func(o *orchestratorOptions) { o.vocabulary = v }
}

// WithTranscript shares a transcript with other collaborators, such as the
// content writer.
func WithTranscript(tr *classify.Transcript) Option {
	return func(o *orchestratorOptions) { o.transcript = tr }
}

// WithSearch sets the realtime search collaborator.
func WithSearch(a Answerer) Option {
	return func(o *orchestratorOptions) { o.search = a }
}

// WithEnhanced sets the enhanced-feature collaborator.
func WithEnhanced(a Answerer) Option {
	return func(o *orchestratorOptions) { o.enhanced = a }
}

// WithHealth sets the healthcare assistant.
func WithHealth(h health.Assistant) Option {
	return func(o *orchestratorOptions) { o.health = h }
}

// WithSpeaker sets the speech synthesizer.
func WithSpeaker(s voice.Speaker) Option {
	return func(o *orchestratorOptions) { o.speaker = s }
}

// WithDisplay sets where conversation lines are shown.
func WithDisplay(d voice.Display) Option {
	return func(o *orchestratorOptions) { o.display = d }
}

// WithJournal records every cycle.
func WithJournal(j Journal) Option {
	return func(o *orchestratorOptions) { o.journal = j }
}

// WithHistory sets the chat log rendered by Initialize.
func WithHistory(h History) Option {
	return func(o *orchestratorOptions) { o.history = h }
}

// WithEventEmitter sets the emitter that receives cycle events.
func WithEventEmitter(e *EventEmitter) Option {
	return func(o *orchestratorOptions) { o.emitter = e }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(o *orchestratorOptions) { o.logger = l }
}

// WithIDGenerator overrides cycle ID generation (mainly for testing).
func WithIDGenerator(f func() string) Option {
	return func(o *orchestratorOptions) { o.newID = f }
}

// WithClock overrides time.Now (mainly for testing).
func WithClock(now func() time.Time) Option {
	return func(o *orchestratorOptions) { o.now = now }
}
