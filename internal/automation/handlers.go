package automation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ShayCichocki/vox/internal/api"
	"github.com/ShayCichocki/vox/internal/command"
	"github.com/ShayCichocki/vox/internal/exec"
	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/pkg/models"
)

// ErrUnknownSystemCommand is returned for system sub-commands with no
// mapping on the current platform.
var ErrUnknownSystemCommand = errors.New("unknown system command")

// ErrNoCollaborator is returned when a handler needs a collaborator that
// was not configured.
var ErrNoCollaborator = errors.New("collaborator not configured")

const (
	googleSearchURL  = "https://www.google.com/search?q="
	youtubeSearchURL = "https://www.youtube.com/results?search_query="

	imageRequestFile = "ImageGeneration.data"

	defaultHandlerTimeout = 15 * time.Second
)

// TranscriptSource is the conversation context the content writer reads.
type TranscriptSource interface {
	Messages() []models.ChatMessage
	Append(role models.Role, content string)
}

// Enhancer answers enhanced-feature commands such as weather or news.
type Enhancer interface {
	Answer(ctx context.Context, command string) (string, error)
}

// ReminderStore persists reminders.
type ReminderStore interface {
	AddReminder(ctx context.Context, text string, createdAt time.Time) (int64, error)
}

// Config holds handler collaborators and settings.
type Config struct {
	Runner        exec.CommandRunner
	DataDir       string
	Writer        api.Completer
	Transcript    TranscriptSource
	Enhancer      Enhancer
	Reminders     ReminderStore
	ProtectedApps []string
	Editor        string
	Assistant     string
	Timeout       time.Duration
	Logger        logging.Logger

	// Now and GOOS are overridable for tests.
	Now  func() time.Time
	GOOS string
}

// Handlers implements the built-in automation handlers.
type Handlers struct {
	cfg       Config
	protected map[string]bool
	logger    logging.Logger
}

// NewHandlers creates Handlers from cfg, filling defaults.
func NewHandlers(cfg Config) *Handlers {
	if cfg.Runner == nil {
		cfg.Runner = exec.NewRunner()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHandlerTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.GOOS == "" {
		cfg.GOOS = runtime.GOOS
	}
	if cfg.ProtectedApps == nil {
		cfg.ProtectedApps = []string{"chrome"}
	}
	if cfg.Assistant == "" {
		cfg.Assistant = "Vox"
	}

	protected := make(map[string]bool, len(cfg.ProtectedApps))
	for _, app := range cfg.ProtectedApps {
		protected[strings.ToLower(strings.TrimSpace(app))] = true
	}

	return &Handlers{cfg: cfg, protected: protected, logger: logging.OrNop(cfg.Logger)}
}

// Register installs every handler on d.
func (h *Handlers) Register(d *Dispatcher) {
	d.Register(command.HandlerOpen, h.Open)
	d.Register(command.HandlerClose, h.Close)
	d.Register(command.HandlerPlay, h.Play)
	d.Register(command.HandlerGoogleSearch, h.GoogleSearch)
	d.Register(command.HandlerYoutubeSearch, h.YoutubeSearch)
	d.Register(command.HandlerContent, h.Content)
	d.Register(command.HandlerSystem, h.System)
	d.Register(command.HandlerGenerateImage, h.GenerateImage)
	d.Register(command.HandlerScreenshot, h.Screenshot)
	d.Register(command.HandlerReminder, h.Reminder)
	d.Register(command.HandlerEnhanced, h.Enhanced)
}

func (h *Handlers) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.cfg.Timeout)
}

// Open launches an application. When no launcher accepts the name it opens
// a web search for it instead.
func (h *Handlers) Open(ctx context.Context, app string) (string, error) {
	app = strings.TrimSpace(app)
	if app == "" {
		return "", errors.New("open: no application named")
	}

	err := h.launchApp(app)
	if err == nil {
		return "", nil
	}
	h.logger.Debug("automation", "app launch failed, falling back to web search", logging.Fields{
		"app":   app,
		"error": err,
	})

	if err := h.openURL(googleSearchURL + url.QueryEscape(app)); err != nil {
		return "", fmt.Errorf("open %s: %w", app, err)
	}
	return "", nil
}

// Close terminates a running application by name. Protected applications
// are left running and reported as success.
func (h *Handlers) Close(ctx context.Context, app string) (string, error) {
	app = strings.TrimSpace(app)
	if app == "" {
		return "", errors.New("close: no application named")
	}
	if h.protected[strings.ToLower(app)] {
		h.logger.Info("automation", "skipping protected application", logging.Fields{"app": app})
		return "", nil
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	name, args, err := closeCommand(h.cfg.GOOS, app)
	if err != nil {
		return "", fmt.Errorf("close: %w", err)
	}
	if out, err := h.cfg.Runner.Run(ctx, name, args...); err != nil {
		return "", fmt.Errorf("close %s: %w: %s", app, err, strings.TrimSpace(string(out)))
	}
	return "", nil
}

// Play opens YouTube results for the query.
func (h *Handlers) Play(ctx context.Context, query string) (string, error) {
	return h.openSearch(youtubeSearchURL, query)
}

// GoogleSearch opens a Google search for the query.
func (h *Handlers) GoogleSearch(ctx context.Context, query string) (string, error) {
	return h.openSearch(googleSearchURL, query)
}

// YoutubeSearch opens YouTube results for the query.
func (h *Handlers) YoutubeSearch(ctx context.Context, query string) (string, error) {
	return h.openSearch(youtubeSearchURL, query)
}

func (h *Handlers) openSearch(base, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("search: empty query")
	}
	if err := h.openURL(base + url.QueryEscape(query)); err != nil {
		return "", fmt.Errorf("search %q: %w", query, err)
	}
	return "", nil
}

// Content asks the writer model for a piece of writing on topic, saves it
// under the data directory and opens it in the editor.
func (h *Handlers) Content(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", errors.New("content: empty topic")
	}
	if h.cfg.Writer == nil {
		return "", fmt.Errorf("content: writer: %w", ErrNoCollaborator)
	}

	ctx, cancel := context.WithTimeout(ctx, 4*h.cfg.Timeout)
	defer cancel()

	text, err := h.cfg.Writer.Complete(ctx, api.CompletionRequest{
		System:      []string{h.writerPrompt(), transcriptContext(h.cfg.Transcript)},
		Messages:    []models.ChatMessage{{Role: models.RoleUser, Content: topic}},
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("content: write %q: %w", topic, err)
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "</s>", ""))
	if h.cfg.Transcript != nil {
		h.cfg.Transcript.Append(models.RoleAssistant, text)
	}

	path := filepath.Join(h.cfg.DataDir, contentFileName(topic))
	if err := writeFile(path, []byte(text)); err != nil {
		return "", fmt.Errorf("content: %w", err)
	}

	if err := h.openInEditor(path); err != nil {
		h.logger.Warn("automation", "failed to open content in editor", logging.Fields{
			"path":  path,
			"error": err,
		})
	}
	return "Content saved to " + path, nil
}

func (h *Handlers) writerPrompt() string {
	return fmt.Sprintf("You are %s, a content writer. Write the requested letters, code, applications, essays, notes, songs or poems in full, without commentary.", h.cfg.Assistant)
}

func transcriptContext(src TranscriptSource) string {
	if src == nil {
		return ""
	}
	msgs := src.Messages()
	if len(msgs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Earlier in this conversation:\n")
	for _, m := range msgs {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	return b.String()
}

// contentFileName maps a topic to "<topic_with_underscores>.txt".
func contentFileName(topic string) string {
	name := strings.ToLower(strings.TrimSpace(topic))
	name = strings.Join(strings.Fields(name), "_")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)
	return name + ".txt"
}

// System runs a system sub-command such as "mute" or "volume up".
func (h *Handlers) System(ctx context.Context, sub string) (string, error) {
	key := normalizeSystem(sub)
	cmds, ok := systemCommands(h.cfg.GOOS)[key]
	if !ok {
		return "", fmt.Errorf("system %q: %w", sub, ErrUnknownSystemCommand)
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	for _, argv := range cmds {
		if out, err := h.cfg.Runner.Run(ctx, argv[0], argv[1:]...); err != nil {
			return "", fmt.Errorf("system %s: %w: %s", key, err, strings.TrimSpace(string(out)))
		}
	}

	if key == "shutdown" {
		return "Shutdown initiated. The computer will turn off in 60 seconds.", nil
	}
	return "", nil
}

// GenerateImage queues an image request for the image generator by writing
// "<prompt>,true" to the request file.
func (h *Handlers) GenerateImage(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(strings.ReplaceAll(prompt, "of this", ""))
	prompt = strings.Join(strings.Fields(prompt), " ")
	if prompt == "" {
		return "", errors.New("generate image: empty prompt")
	}

	path := filepath.Join(h.cfg.DataDir, imageRequestFile)
	if err := writeFile(path, []byte(prompt+",true")); err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	return "", nil
}

// Screenshot captures the screen to a timestamped PNG in the data directory.
func (h *Handlers) Screenshot(ctx context.Context, _ string) (string, error) {
	if err := os.MkdirAll(h.cfg.DataDir, 0755); err != nil {
		return "", fmt.Errorf("screenshot: create data dir: %w", err)
	}
	path := filepath.Join(h.cfg.DataDir, "screenshot_"+h.cfg.Now().Format("20060102_150405")+".png")

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	var lastErr error = errors.New("no screenshot tool available")
	for _, argv := range screenshotCommands(h.cfg.GOOS, path) {
		if _, err := h.cfg.Runner.LookPath(argv[0]); err != nil {
			continue
		}
		if out, err := h.cfg.Runner.Run(ctx, argv[0], argv[1:]...); err != nil {
			lastErr = fmt.Errorf("%s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
			continue
		}
		return "Screenshot saved to " + path, nil
	}
	return "", fmt.Errorf("screenshot: %w", lastErr)
}

// Reminder stores a reminder.
func (h *Handlers) Reminder(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("reminder: empty text")
	}
	if h.cfg.Reminders == nil {
		return "", fmt.Errorf("reminder: store: %w", ErrNoCollaborator)
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if _, err := h.cfg.Reminders.AddReminder(ctx, text, h.cfg.Now()); err != nil {
		return "", fmt.Errorf("reminder: %w", err)
	}
	return "Reminder set: " + text, nil
}

// Enhanced forwards the whole command to the enhanced-feature service.
func (h *Handlers) Enhanced(ctx context.Context, cmd string) (string, error) {
	if h.cfg.Enhancer == nil {
		return "", fmt.Errorf("enhanced: %w", ErrNoCollaborator)
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	return h.cfg.Enhancer.Answer(ctx, cmd)
}

func (h *Handlers) launchApp(app string) error {
	switch h.cfg.GOOS {
	case "darwin":
		return h.cfg.Runner.Start("open", "-a", app)
	case "windows":
		args, err := windowsStartArgs(app)
		if err != nil {
			return err
		}
		return h.cfg.Runner.Start("cmd", args...)
	default:
		bin := strings.ToLower(strings.Join(strings.Fields(app), "-"))
		path, err := h.cfg.Runner.LookPath(bin)
		if err != nil {
			return err
		}
		return h.cfg.Runner.Start(path)
	}
}

func (h *Handlers) openURL(u string) error {
	name, args := browserCommand(h.cfg.GOOS, u)
	return h.cfg.Runner.Start(name, args...)
}

func (h *Handlers) openInEditor(path string) error {
	if h.cfg.Editor != "" {
		fields := strings.Fields(h.cfg.Editor)
		return h.cfg.Runner.Start(fields[0], append(fields[1:], path)...)
	}
	name, args := editorCommand(h.cfg.GOOS, path)
	return h.cfg.Runner.Start(name, args...)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
