package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/vox/pkg/models"
)

// Footer renders the status bar and keyboard hints.
type Footer struct {
	status  models.AssistantStatus
	mic     bool
	message string
	spin    string
	width   int
	// activityFocused switches the hints to the activity panel keys.
	activityFocused bool

	readyStyle     lipgloss.Style
	busyStyle      lipgloss.Style
	micOnStyle     lipgloss.Style
	micOffStyle    lipgloss.Style
	hintStyle      lipgloss.Style
	separatorStyle lipgloss.Style
}

// NewFooter creates a new Footer instance.
func NewFooter() *Footer {
	return &Footer{
		status: models.StatusReady,

		readyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")).
			Bold(true),

		busyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),

		micOnStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),

		micOffStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		separatorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")),
	}
}

// SetStatus updates the assistant status and mic state.
func (f *Footer) SetStatus(status models.AssistantStatus, mic bool) {
	f.status = status
	f.mic = mic
}

// SetMessage sets a transient message shown after the status.
func (f *Footer) SetMessage(message string) {
	f.message = message
}

// SetSpinner sets the frame shown while the assistant is busy.
func (f *Footer) SetSpinner(frame string) {
	f.spin = frame
}

// SetActivityFocused switches the keyboard hints.
func (f *Footer) SetActivityFocused(focused bool) {
	f.activityFocused = focused
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// View renders the footer.
func (f *Footer) View() string {
	sep := f.separatorStyle.Render(" │ ")

	var left string
	if f.status == models.StatusReady || f.status == models.StatusAvailable {
		left = f.readyStyle.Render(f.status.Label())
	} else {
		left = f.spin + f.busyStyle.Render(f.status.Label())
	}

	if f.mic {
		left += sep + f.micOnStyle.Render("mic on")
	} else {
		left += sep + f.micOffStyle.Render("mic off")
	}

	if f.message != "" {
		left += sep + f.hintStyle.Render(f.message)
	}

	return left + sep + f.keyboardHints()
}

// keyboardHints returns context-sensitive keyboard hints.
func (f *Footer) keyboardHints() string {
	hints := "tab focus │ ctrl+t mic"
	if f.activityFocused {
		hints += " │ ↑/↓ scroll │ f filter │ a auto-scroll"
	}
	hints += " │ ctrl+c quit"
	return f.hintStyle.Render(hints)
}
