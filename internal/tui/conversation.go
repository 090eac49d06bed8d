package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/vox/internal/voice"
	"github.com/ShayCichocki/vox/pkg/models"
)

// LineMsg is sent when a conversation line should be shown.
type LineMsg struct {
	Line voice.Line
}

// ConversationView displays a scrollable view of the conversation.
type ConversationView struct {
	// lines contains every line shown so far.
	lines []voice.Line
	// scrollOffset is the current scroll position in wrapped lines (0 = top).
	scrollOffset int
	width        int
	height       int
	// autoScroll keeps the newest line in view.
	autoScroll bool
	focused    bool
	maxLines   int

	userStyle      lipgloss.Style
	assistantStyle lipgloss.Style
}

// NewConversationView creates a new ConversationView instance.
func NewConversationView() *ConversationView {
	return &ConversationView{
		width:      80,
		height:     20,
		autoScroll: true,
		maxLines:   500,

		userStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),

		assistantStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")),
	}
}

// AppendLine adds a conversation line.
func (c *ConversationView) AppendLine(line voice.Line) {
	c.lines = append(c.lines, line)
	if len(c.lines) > c.maxLines {
		c.lines = c.lines[len(c.lines)-c.maxLines:]
	}
	if c.autoScroll {
		c.scrollToBottom()
	}
}

// Lines returns the lines shown so far.
func (c *ConversationView) Lines() []voice.Line {
	return c.lines
}

// SetSize updates the view dimensions.
func (c *ConversationView) SetSize(width, height int) {
	c.width = width
	c.height = height
	if c.autoScroll {
		c.scrollToBottom()
	}
}

// SetFocused sets whether this view has keyboard focus.
func (c *ConversationView) SetFocused(focused bool) {
	c.focused = focused
}

// Update handles scroll keys while focused.
func (c *ConversationView) Update(msg tea.Msg) (*ConversationView, tea.Cmd) {
	switch msg := msg.(type) {
	case LineMsg:
		c.AppendLine(msg.Line)
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		switch msg.String() {
		case "up", "k":
			if c.scrollOffset > 0 {
				c.scrollOffset--
			}
			c.autoScroll = false
		case "down", "j":
			if c.scrollOffset < c.maxOffset() {
				c.scrollOffset++
			}
		case "pgup":
			c.scrollOffset = max(0, c.scrollOffset-c.visibleLines())
			c.autoScroll = false
		case "pgdown":
			c.scrollOffset = min(c.maxOffset(), c.scrollOffset+c.visibleLines())
		case "home", "g":
			c.scrollOffset = 0
			c.autoScroll = false
		case "end", "G", "f":
			c.autoScroll = true
			c.scrollToBottom()
		}
	}
	return c, nil
}

// visibleLines returns the number of content lines inside the border.
func (c *ConversationView) visibleLines() int {
	return max(1, c.height-3) // title + borders
}

func (c *ConversationView) maxOffset() int {
	return max(0, len(c.wrapLines())-c.visibleLines())
}

// scrollToBottom moves the view to show the last lines.
func (c *ConversationView) scrollToBottom() {
	c.scrollOffset = c.maxOffset()
}

// wrapLines renders and wraps every line to the content width.
func (c *ConversationView) wrapLines() []string {
	width := max(10, c.width-4)
	var wrapped []string
	for _, line := range c.lines {
		style := c.assistantStyle
		if line.Role == models.RoleUser {
			style = c.userStyle
		}
		for _, part := range wrapText(line.String(), width) {
			wrapped = append(wrapped, style.Render(part))
		}
	}
	return wrapped
}

// wrapText splits s into rows of at most width runes, breaking at spaces where it can.
func wrapText(s string, width int) []string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return []string{s}
	}

	var out []string
	for len(runes) > width {
		breakPoint := width
		for i := width - 1; i > width/2; i-- {
			if runes[i] == ' ' {
				breakPoint = i + 1
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:breakPoint]), " "))
		runes = runes[breakPoint:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

// View renders the conversation panel.
func (c *ConversationView) View() string {
	var b strings.Builder

	title := "Conversation"
	if c.focused {
		title = "[Conversation]"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1).Render(title))
	b.WriteString("\n")

	wrapped := c.wrapLines()
	if len(wrapped) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Render("  Nothing said yet"))
	} else {
		end := min(len(wrapped), c.scrollOffset+c.visibleLines())
		for i := c.scrollOffset; i < end; i++ {
			b.WriteString(wrapped[i])
			if i < end-1 {
				b.WriteString("\n")
			}
		}
		if !c.autoScroll && len(wrapped) > c.visibleLines() {
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Render(fmt.Sprintf("\n  [%d/%d paused, f to follow]", end, len(wrapped))))
		}
	}

	borderColor := lipgloss.Color("240")
	if c.focused {
		borderColor = lipgloss.Color("63")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(max(1, c.width-2)).
		Height(max(1, c.height-2)).
		Render(b.String())
}
