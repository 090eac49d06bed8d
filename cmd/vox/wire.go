package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/vox/internal/api"
	"github.com/ShayCichocki/vox/internal/automation"
	"github.com/ShayCichocki/vox/internal/chat"
	"github.com/ShayCichocki/vox/internal/chatlog"
	"github.com/ShayCichocki/vox/internal/classify"
	"github.com/ShayCichocki/vox/internal/config"
	"github.com/ShayCichocki/vox/internal/enhanced"
	"github.com/ShayCichocki/vox/internal/events"
	"github.com/ShayCichocki/vox/internal/exec"
	"github.com/ShayCichocki/vox/internal/health"
	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/internal/orchestrator"
	"github.com/ShayCichocki/vox/internal/state"
	"github.com/ShayCichocki/vox/internal/status"
	"github.com/ShayCichocki/vox/internal/vocab"
	"github.com/ShayCichocki/vox/internal/voice"
)

// journalRetention bounds how long finished cycles stay in the journal.
const journalRetention = 30 * 24 * time.Hour

// customVocabularyFile overrides the embedded verb list when present in
// the data directory.
const customVocabularyFile = "verbs.yaml"

// wiring holds the presentation-specific collaborators.
type wiring struct {
	Listener voice.Listener
	Display  voice.Display
	// Console enables the console log core. It must be off under the TUI.
	Console bool
	// Events, when set, receives orchestrator events.
	Events *orchestrator.EventEmitter
}

// assistant owns every long-lived component of a running session.
type assistant struct {
	cfg     *config.Config
	log     logging.Logger
	db      *state.DB
	history *chatlog.Store
	status  *status.Channel
	mirror  *status.FileMirror
	orch    *orchestrator.Orchestrator
	tracker *api.TokenTracker

	publisher *events.Publisher
	cancel    context.CancelFunc
}

// newAssistant builds the full component graph from cfg.
func newAssistant(ctx context.Context, cfg *config.Config, w wiring) (*assistant, error) {
	zl, err := logging.New(logging.Options{
		FilePath:  cfg.LogPath(),
		Level:     cfg.Log.Level,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		Console:   w.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &assistant{cfg: cfg, log: zl, cancel: cancel}
	built := false
	defer func() {
		if !built {
			a.Close()
		}
	}()

	a.db, err = state.OpenAndMigrate(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if n, err := state.NewRecoveryManager(a.db).Recover(ctx); err != nil {
		a.log.Warn("main", "journal recovery failed", logging.Fields{"error": err.Error()})
	} else if n > 0 {
		a.log.Info("main", "marked interrupted cycles", logging.Fields{"count": n})
	}
	if _, err := a.db.PurgeOldCycles(ctx, journalRetention); err != nil {
		a.log.Warn("main", "journal purge failed", logging.Fields{"error": err.Error()})
	}

	a.history = chatlog.New(filepath.Join(cfg.DataDir, chatlog.FileName), a.log)

	a.status = status.New()
	a.mirror, err = status.NewFileMirror(cfg.DataDir, a.status)
	if err != nil {
		return nil, fmt.Errorf("create status files: %w", err)
	}

	if cfg.Events.NATSURL != "" {
		a.startEvents(ctx)
	}

	mainModel, classifierModel, tracker := newCompleters(cfg, a.log)
	a.tracker = tracker

	v := loadVocabulary(cfg.DataDir, a.log)
	transcript := classify.NewTranscript(cfg.Classifier.TranscriptLimit)

	classifier := classify.New(classifierModel, classify.Options{
		Vocabulary:  v,
		MaxRetries:  cfg.Classifier.MaxRetries,
		Temperature: cfg.Classifier.Temperature,
		Logger:      a.log,
	})

	chatOpts := chat.Options{
		Username:    cfg.Assistant.Username,
		Assistant:   cfg.Assistant.Name,
		MaxTokens:   cfg.Chat.MaxTokens,
		Temperature: cfg.Chat.Temperature,
		Logger:      a.log,
	}
	chatbot := chat.NewChatbot(mainModel, a.history, chatOpts)
	search := chat.NewSearchEngine(mainModel, a.history, chat.SearchOptions{
		Options:     chatOpts,
		APIKey:      cfg.Search.GoogleAPIKey,
		EngineID:    cfg.Search.EngineID,
		FallbackURL: cfg.Search.FallbackURL,
		CacheTTL:    cfg.Search.CacheTTL,
		Timeout:     cfg.Search.Timeout,
	})

	enhancedSvc := enhanced.New(enhanced.Config{
		WeatherKey:  cfg.Enhanced.OpenWeatherAPIKey,
		NewsKey:     cfg.Enhanced.NewsAPIKey,
		StockKey:    cfg.Enhanced.AlphaVantageAPIKey,
		LocationKey: cfg.Enhanced.OpenCageAPIKey,
		CricketKey:  cfg.Enhanced.CricketAPIKey,
		SMTP: enhanced.SMTP{
			Host:     cfg.Enhanced.SMTP.Host,
			Port:     cfg.Enhanced.SMTP.Port,
			Username: cfg.Enhanced.SMTP.Username,
			Password: cfg.Enhanced.SMTP.Password,
			From:     cfg.Enhanced.SMTP.From,
		},
		DefaultCity: cfg.Enhanced.DefaultCity,
		NewsCountry: cfg.Enhanced.NewsCountry,
		Timeout:     cfg.Enhanced.Timeout,
		Logger:      a.log,
	})

	var healthAssistant health.Assistant = health.Unavailable{}
	if cfg.Health.Enabled {
		healthAssistant = health.NewJournal(a.db, health.JournalConfig{
			DoctorName:      cfg.Health.DoctorName,
			DoctorPhone:     cfg.Health.DoctorPhone,
			EmergencyNumber: cfg.Health.EmergencyNumber,
			Logger:          a.log,
		})
	}

	runner := exec.NewRunner()
	dispatcher := automation.NewDispatcher(a.log)
	automation.NewHandlers(automation.Config{
		Runner:        runner,
		DataDir:       cfg.DataDir,
		Writer:        mainModel,
		Transcript:    transcript,
		Enhancer:      enhancedSvc,
		Reminders:     a.db,
		ProtectedApps: cfg.Automation.ProtectedApps,
		Editor:        cfg.Automation.Editor,
		Assistant:     cfg.Assistant.Name,
		Timeout:       cfg.Automation.HandlerTimeout,
		Logger:        a.log,
	}).Register(dispatcher)

	opts := []orchestrator.Option{
		orchestrator.WithNames(cfg.Assistant.Username, cfg.Assistant.Name),
		orchestrator.WithIdlePoll(cfg.Orchestrator.IdlePoll),
		orchestrator.WithVocabulary(v),
		orchestrator.WithTranscript(transcript),
		orchestrator.WithSearch(search),
		orchestrator.WithEnhanced(enhancedSvc),
		orchestrator.WithHealth(healthAssistant),
		orchestrator.WithSpeaker(newSpeaker(cfg, runner, a.log)),
		orchestrator.WithJournal(a.db),
		orchestrator.WithHistory(a.history),
		orchestrator.WithLogger(a.log),
	}
	if w.Display != nil {
		opts = append(opts, orchestrator.WithDisplay(w.Display))
	}
	if w.Events != nil {
		opts = append(opts, orchestrator.WithEventEmitter(w.Events))
	}

	a.orch, err = orchestrator.New(orchestrator.RequiredConfig{
		Listener:   w.Listener,
		Classifier: classifier,
		Dispatcher: dispatcher,
		Chatbot:    chatbot,
		Status:     a.status,
	}, opts...)
	if err != nil {
		return nil, err
	}

	a.log.Info("main", "assistant ready", logging.Fields{
		"assistant": cfg.Assistant.Name,
		"data_dir":  cfg.DataDir,
		"health":    cfg.Health.Enabled,
		"handlers":  len(dispatcher.Handlers()),
	})
	built = true
	return a, nil
}

// startEvents publishes status writes to NATS. Connection failures are
// logged and the assistant runs without events.
func (a *assistant) startEvents(ctx context.Context) {
	pub, err := events.NewPublisher(events.PublisherConfig{
		URL:           a.cfg.Events.NATSURL,
		SubjectPrefix: a.cfg.Events.SubjectPrefix,
		Logger:        a.log,
	})
	if err != nil {
		a.log.Warn("main", "status events disabled", logging.Fields{"error": err.Error()})
		return
	}
	a.publisher = pub

	relay := events.NewRelay(pub, a.log)
	relay.Attach(a.status)
	go relay.Run(ctx)
}

// run initializes the display and runs the loop until exit or cancellation.
// An exit cycle and a closed input both count as a clean stop.
func (a *assistant) run(ctx context.Context, micOn bool) error {
	a.orch.Initialize()
	if micOn {
		a.status.SetMic(true)
	}

	err := a.orch.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, io.EOF):
		return nil
	default:
		return err
	}
}

// Close releases every resource. It is safe on a partly built assistant.
func (a *assistant) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.mirror != nil {
		_ = a.mirror.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.tracker != nil && a.tracker.Calls() > 0 {
		in, out := a.tracker.Total()
		a.log.Info("main", "token usage", logging.Fields{
			"calls":    a.tracker.Calls(),
			"input":    in,
			"output":   out,
			"cost_usd": a.tracker.Cost(),
		})
	}
	_ = a.log.Sync()
}

// newCompleters creates the chat and classifier models. Without
// credentials both are api.Unavailable, so every caller takes its fallback.
func newCompleters(cfg *config.Config, log logging.Logger) (chatModel, classifierModel api.Completer, tracker *api.TokenTracker) {
	apiKey := ""
	if !cfg.Anthropic.UseBedrock {
		key, err := config.GetAPIKey(cfg)
		if err != nil {
			log.Warn("main", "no Anthropic credentials, using offline fallbacks", nil)
			return api.Unavailable{Reason: err}, api.Unavailable{Reason: err}, nil
		}
		apiKey = key
	}

	tracker = api.NewTokenTracker()
	newClient := func(model string) (*api.Client, error) {
		return api.NewClient(api.ClientConfig{
			Model:         anthropic.Model(model),
			APIKey:        apiKey,
			BaseURL:       cfg.Anthropic.BaseURL,
			UseAWSBedrock: cfg.Anthropic.UseBedrock,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
			Tracker:       tracker,
		})
	}

	mainClient, err := newClient(cfg.Anthropic.Model)
	if err != nil {
		log.Warn("main", "create API client failed", logging.Fields{"error": err.Error()})
		return api.Unavailable{Reason: err}, api.Unavailable{Reason: err}, nil
	}

	name := cfg.Anthropic.ClassifierModel
	if name == "" || name == cfg.Anthropic.Model {
		return mainClient, mainClient, tracker
	}
	classifierClient, err := newClient(name)
	if err != nil {
		log.Warn("main", "create classifier client failed, sharing chat model", logging.Fields{"error": err.Error()})
		return mainClient, mainClient, tracker
	}
	return mainClient, classifierClient, tracker
}

// newSpeaker selects the synthesizer named by voice.speaker.
func newSpeaker(cfg *config.Config, runner exec.CommandRunner, log logging.Logger) voice.Speaker {
	command := cfg.Voice.Speaker
	switch command {
	case "none":
		return voice.NopSpeaker{}
	case "auto":
		command = ""
	}

	speaker, err := voice.NewExecSpeaker(runner, command, cfg.Assistant.Voice, log)
	if err != nil {
		log.Warn("main", "speech disabled", logging.Fields{"error": err.Error()})
		return voice.NopSpeaker{}
	}
	log.Debug("main", "speech synthesizer selected", logging.Fields{"command": speaker.Command()})
	return voice.NewSummarizingSpeaker(speaker)
}

// loadVocabulary reads data_dir/verbs.yaml, falling back to the embedded
// list when it is missing or invalid.
func loadVocabulary(dataDir string, log logging.Logger) *vocab.Vocabulary {
	path := filepath.Join(dataDir, customVocabularyFile)
	if _, err := os.Stat(path); err != nil {
		return vocab.Default()
	}
	v, err := vocab.Load(path)
	if err != nil {
		log.Warn("main", "custom vocabulary ignored", logging.Fields{"path": path, "error": err.Error()})
		return vocab.Default()
	}
	log.Info("main", "loaded custom vocabulary", logging.Fields{"path": path, "verbs": v.Len()})
	return v
}
