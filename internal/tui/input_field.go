package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UtteranceSubmittedMsg is sent when the user submits a line of text.
type UtteranceSubmittedMsg struct {
	Text string
}

// InputField is a text input component standing in for the microphone.
type InputField struct {
	input textinput.Model
	width int
	muted bool
}

// NewInputField creates a new InputField.
func NewInputField() *InputField {
	ti := textinput.New()
	ti.Placeholder = "Say something and press Enter..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	return &InputField{
		input: ti,
		width: 80,
	}
}

// SetWidth sets the width of the input field.
func (f *InputField) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 4 // Account for prompt and padding
}

// SetMuted switches the placeholder to reflect the microphone state.
func (f *InputField) SetMuted(muted bool) {
	f.muted = muted
	if muted {
		f.input.Placeholder = "Microphone is off (ctrl+t to turn on)"
	} else {
		f.input.Placeholder = "Say something and press Enter..."
	}
}

// Update handles messages for the input field.
func (f *InputField) Update(msg tea.Msg) (*InputField, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			text := strings.TrimSpace(f.input.Value())
			if text != "" {
				f.input.Reset()
				return f, func() tea.Msg {
					return UtteranceSubmittedMsg{Text: text}
				}
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the input field.
func (f *InputField) View() string {
	color := lipgloss.Color("39")
	if f.muted {
		color = lipgloss.Color("240")
	}
	promptStyle := lipgloss.NewStyle().
		Foreground(color).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(f.width - 2)

	prompt := promptStyle.Render("> ")
	return boxStyle.Render(prompt + f.input.View())
}

// Focus sets focus on the input field.
func (f *InputField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus from the input field.
func (f *InputField) Blur() {
	f.input.Blur()
}

// Focused reports whether the input field has focus.
func (f *InputField) Focused() bool {
	return f.input.Focused()
}
