package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/vox/internal/orchestrator"
	"github.com/ShayCichocki/vox/internal/status"
	"github.com/ShayCichocki/vox/internal/voice"
)

// DefaultRefreshRate is how often the status slots are polled.
const DefaultRefreshRate = 100 * time.Millisecond

// Focus targets cycled with tab.
const (
	FocusInput = iota
	FocusConversation
	FocusActivity
	focusCount
)

// StatusLabelMsg is sent when the orchestrator publishes a status label.
type StatusLabelMsg struct {
	Label string
}

// OrchestratorEventMsg wraps an orchestrator event for the TUI.
type OrchestratorEventMsg struct {
	Event orchestrator.OrchestratorEvent
}

// ChatLogChangedMsg is sent when the chat log file is written.
type ChatLogChangedMsg struct{}

// refreshMsg drives the periodic status poll.
type refreshMsg time.Time

// Submitter receives utterances typed into the input field.
type Submitter interface {
	Submit(text string) bool
}

// Config holds the collaborators of the App.
type Config struct {
	// Status is the shared status channel. Required.
	Status *status.Channel
	// Listener receives submitted utterances. Required.
	Listener Submitter
	// Assistant is the assistant name shown in the header.
	Assistant string
	// RefreshRate is the status poll interval.
	RefreshRate time.Duration
}

// App is the main bubbletea model for the vox TUI.
type App struct {
	cfg Config

	header       *Header
	conversation *ConversationView
	logs         *LogsPanel
	input        *InputField
	footer       *Footer
	layout       *LayoutManager
	spinner      spinner.Model

	focus    int
	width    int
	height   int
	quitting bool
}

// NewApp creates a new App.
func NewApp(cfg Config) *App {
	if cfg.RefreshRate <= 0 {
		cfg.RefreshRate = DefaultRefreshRate
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	a := &App{
		cfg:          cfg,
		spinner:      spin,
		header:       NewHeader(cfg.Assistant),
		conversation: NewConversationView(),
		logs:         NewLogsPanel(),
		input:        NewInputField(),
		footer:       NewFooter(),
		layout:       NewLayoutManager(80, 24),
		focus:        FocusInput,
	}
	a.syncStatus()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.input.Focus(), a.tick(), a.spinner.Tick)
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.cfg.RefreshRate, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// syncStatus copies the status slots into the footer and input field.
func (a *App) syncStatus() {
	snap := a.cfg.Status.Snapshot()
	a.footer.SetStatus(snap.Status, snap.Mic)
	a.input.SetMuted(!snap.Mic)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case refreshMsg:
		a.syncStatus()
		return a, a.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case UtteranceSubmittedMsg:
		a.submit(msg.Text)
		return a, nil

	case LineMsg:
		a.conversation.AppendLine(msg.Line)
		return a, nil

	case StatusLabelMsg:
		a.syncStatus()
		return a, nil

	case OrchestratorEventMsg:
		a.logs.AddLog(EntryFromEvent(msg.Event))
		return a, nil

	case ChatLogChangedMsg:
		a.logs.AddLog(PanelLogEntry{Timestamp: time.Now(), Level: LogLevelDebug, Message: "chat log saved"})
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit

	case "ctrl+t":
		on := a.cfg.Status.ToggleMic()
		a.syncStatus()
		if on {
			a.footer.SetMessage("microphone on")
		} else {
			a.footer.SetMessage("microphone off")
		}
		return a, nil

	case "tab":
		return a, a.setFocus((a.focus + 1) % focusCount)

	case "shift+tab":
		return a, a.setFocus((a.focus + focusCount - 1) % focusCount)

	case "esc":
		return a, a.setFocus(FocusInput)
	}

	var cmd tea.Cmd
	switch a.focus {
	case FocusInput:
		a.input, cmd = a.input.Update(msg)
	case FocusConversation:
		a.conversation, cmd = a.conversation.Update(msg)
	case FocusActivity:
		a.logs, cmd = a.logs.Update(msg)
	}
	return a, cmd
}

// submit hands text to the listener when the microphone is on.
func (a *App) submit(text string) {
	if !a.cfg.Status.GetMic() {
		a.footer.SetMessage("microphone is off, press ctrl+t")
		return
	}
	if !a.cfg.Listener.Submit(text) {
		a.footer.SetMessage("still working on the last request")
		return
	}
	a.footer.SetMessage("")
}

func (a *App) setFocus(focus int) tea.Cmd {
	a.focus = focus
	a.conversation.SetFocused(focus == FocusConversation)
	a.logs.SetFocused(focus == FocusActivity)
	a.footer.SetActivityFocused(focus == FocusActivity)
	if focus == FocusInput {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

// Focus returns the focused component.
func (a *App) Focus() int {
	return a.focus
}

// updateSizes updates the sizes of child components based on terminal size.
func (a *App) updateSizes() {
	a.header.SetWidth(a.width)
	a.footer.SetWidth(a.width)
	a.input.SetWidth(a.width)

	// Short terminals lose the logo.
	if a.height < 24 {
		a.layout.SetHeaderHeight(0)
	} else {
		a.layout.SetHeaderHeight(a.header.Height())
	}
	a.layout.SetSize(a.width, a.height)

	dims := a.layout.Calculate()
	a.conversation.SetSize(dims.ConversationWidth, dims.ContentHeight)
	a.logs.SetSize(dims.ActivityWidth, dims.ContentHeight)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	panels := a.conversation.View()
	if a.layout.Calculate().ActivityWidth > 0 {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, panels, a.logs.View())
	}

	parts := []string{}
	if a.layout.HeaderHeight() > 0 {
		parts = append(parts, a.header.View())
	}
	a.footer.SetSpinner(a.spinner.View())
	parts = append(parts, panels, a.input.View(), a.footer.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Conversation returns the conversation view.
func (a *App) Conversation() *ConversationView {
	return a.conversation
}

// Logs returns the activity panel.
func (a *App) Logs() *LogsPanel {
	return a.logs
}

// NewProgram creates a new Bubbletea program running an App.
func NewProgram(cfg Config) (*tea.Program, *App) {
	app := NewApp(cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}

// Sender delivers messages to a running program.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramDisplay implements voice.Display by sending messages to the TUI.
type ProgramDisplay struct {
	sender Sender
}

// NewProgramDisplay creates a display backed by sender, usually a *tea.Program.
func NewProgramDisplay(sender Sender) *ProgramDisplay {
	return &ProgramDisplay{sender: sender}
}

// Show sends the line to the conversation view.
func (d *ProgramDisplay) Show(line voice.Line) {
	d.sender.Send(LineMsg{Line: line})
}

// Status sends the status label to the footer.
func (d *ProgramDisplay) Status(label string) {
	d.sender.Send(StatusLabelMsg{Label: label})
}

var _ voice.Display = (*ProgramDisplay)(nil)

// ForwardEvents sends orchestrator events to the TUI until events is closed
// or ctx is cancelled.
func ForwardEvents(ctx context.Context, sender Sender, events <-chan orchestrator.OrchestratorEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			sender.Send(OrchestratorEventMsg{Event: e})
		}
	}
}
