package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/vox/internal/orchestrator"
)

// LogLevel represents the severity of a log message.
type LogLevel string

const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelDebug LogLevel = "DEBUG"
)

// Log filters cycled with the f key.
const (
	FilterAll      = "all"
	FilterCycle    = "cycle"
	FilterProblems = "problems"
)

// PanelLogEntry represents a single entry in the activity log.
type PanelLogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	CycleID   string // Empty means global log
	Message   string
}

// EntryFromEvent converts an orchestrator event into an activity log entry.
func EntryFromEvent(e orchestrator.OrchestratorEvent) PanelLogEntry {
	entry := PanelLogEntry{
		Timestamp: e.Timestamp,
		Level:     LogLevelInfo,
		CycleID:   e.CycleID,
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	switch e.Type {
	case orchestrator.EventCycleStarted:
		entry.Level = LogLevelDebug
		entry.Message = "heard: " + e.Message
	case orchestrator.EventDecision:
		entry.Message = "decision: " + strings.Join(e.Decision.Strings(), ", ")
	case orchestrator.EventActionCompleted:
		if e.Result == nil {
			entry.Message = "action completed"
			break
		}
		if e.Result.Success {
			entry.Message = fmt.Sprintf("%s ok (%s)", e.Result.Handler, e.Result.Duration.Round(time.Millisecond))
		} else {
			entry.Level = LogLevelWarn
			entry.Message = fmt.Sprintf("%s failed", e.Result.Handler)
			if e.Result.Err != "" {
				entry.Message += ": " + e.Result.Err
			}
		}
	case orchestrator.EventAnswer:
		entry.Level = LogLevelDebug
		entry.Message = "answer: " + e.Message
	case orchestrator.EventCycleCompleted:
		entry.Message = fmt.Sprintf("cycle done via %s in %s", e.Branch, e.Duration.Round(time.Millisecond))
		if e.Error != nil {
			entry.Level = LogLevelError
			entry.Message += ": " + e.Error.Error()
		}
	default:
		entry.Message = string(e.Type) + " " + e.Message
	}
	return entry
}

// LogsPanel displays a filterable, scrollable activity log.
type LogsPanel struct {
	logs         []PanelLogEntry
	filter       string
	filterIndex  int
	currentCycle string
	scrollOffset int
	autoScroll   bool
	width        int
	height       int
	focused      bool
	maxLogs      int // Maximum log entries to keep

	titleStyle   lipgloss.Style
	filterStyle  lipgloss.Style
	infoStyle    lipgloss.Style
	warnStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	debugStyle   lipgloss.Style
	timeStyle    lipgloss.Style
	cycleStyle   lipgloss.Style
	messageStyle lipgloss.Style
}

var filterOptions = []string{FilterAll, FilterCycle, FilterProblems}

// NewLogsPanel creates a new LogsPanel instance.
func NewLogsPanel() *LogsPanel {
	return &LogsPanel{
		filter:     FilterAll,
		autoScroll: true,
		maxLogs:    1000,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1),

		filterStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),

		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")), // Green

		warnStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange

		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red

		debugStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")), // Gray

		timeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		cycleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")), // Blue

		messageStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
	}
}

// AddLog adds a new log entry.
func (p *LogsPanel) AddLog(entry PanelLogEntry) {
	p.logs = append(p.logs, entry)

	if len(p.logs) > p.maxLogs {
		p.logs = p.logs[len(p.logs)-p.maxLogs:]
	}

	if entry.CycleID != "" {
		p.currentCycle = entry.CycleID
	}

	if p.autoScroll {
		p.scrollToBottom()
	}
}

// SetSize updates the panel dimensions.
func (p *LogsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this panel has keyboard focus.
func (p *LogsPanel) SetFocused(focused bool) {
	p.focused = focused
}

// Update handles input messages.
func (p *LogsPanel) Update(msg tea.Msg) (*LogsPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if p.scrollOffset > 0 {
				p.scrollOffset--
				p.autoScroll = false
			}
		case "down", "j":
			if p.scrollOffset < len(p.filteredLogs())-p.visibleLines() {
				p.scrollOffset++
			}
		case "f":
			p.filterIndex = (p.filterIndex + 1) % len(filterOptions)
			p.filter = filterOptions[p.filterIndex]
			p.scrollToBottom()
		case "g":
			p.scrollOffset = 0
			p.autoScroll = false
		case "G":
			p.scrollToBottom()
			p.autoScroll = true
		case "a":
			p.autoScroll = !p.autoScroll
			if p.autoScroll {
				p.scrollToBottom()
			}
		}
	}

	return p, nil
}

// visibleLines returns the number of visible log lines.
func (p *LogsPanel) visibleLines() int {
	return max(1, p.height-4) // title + indicator + borders
}

// scrollToBottom scrolls to the bottom of the log.
func (p *LogsPanel) scrollToBottom() {
	p.scrollOffset = max(0, len(p.filteredLogs())-p.visibleLines())
}

// filteredLogs returns logs matching the current filter.
func (p *LogsPanel) filteredLogs() []PanelLogEntry {
	if p.filter == FilterAll {
		return p.logs
	}

	filtered := make([]PanelLogEntry, 0)
	for _, log := range p.logs {
		switch p.filter {
		case FilterCycle:
			if log.CycleID == p.currentCycle {
				filtered = append(filtered, log)
			}
		case FilterProblems:
			if log.Level == LogLevelWarn || log.Level == LogLevelError {
				filtered = append(filtered, log)
			}
		}
	}
	return filtered
}

// View renders the logs panel.
func (p *LogsPanel) View() string {
	var b strings.Builder

	title := "Activity"
	if p.focused {
		title = "[Activity]"
	}
	b.WriteString(p.titleStyle.Render(title))

	filterText := fmt.Sprintf(" [%s]", p.filter)
	if p.autoScroll {
		filterText += " (auto)"
	}
	b.WriteString(p.filterStyle.Render(filterText))
	b.WriteString("\n")

	filtered := p.filteredLogs()
	visibleLines := p.visibleLines()

	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Render("  No activity"))
	} else {
		endIdx := min(len(filtered), p.scrollOffset+visibleLines)
		for i := max(0, p.scrollOffset); i < endIdx; i++ {
			b.WriteString(p.renderLogLine(filtered[i]))
			b.WriteString("\n")
		}

		if len(filtered) > visibleLines {
			scrollPct := float64(p.scrollOffset) / float64(len(filtered)-visibleLines) * 100
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Render(fmt.Sprintf(" [%d/%d %.0f%%]", endIdx, len(filtered), scrollPct)))
		}
	}

	borderColor := lipgloss.Color("240")
	if p.focused {
		borderColor = lipgloss.Color("63")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(max(1, p.width-2)).
		Height(max(1, p.height-2)).
		Render(b.String())
}

// renderLogLine renders a single log entry.
func (p *LogsPanel) renderLogLine(entry PanelLogEntry) string {
	var parts []string

	parts = append(parts, p.timeStyle.Render(entry.Timestamp.Format("15:04:05")))

	levelStyle := p.infoStyle
	levelIcon := "I"
	switch entry.Level {
	case LogLevelWarn:
		levelStyle = p.warnStyle
		levelIcon = "W"
	case LogLevelError:
		levelStyle = p.errorStyle
		levelIcon = "E"
	case LogLevelDebug:
		levelStyle = p.debugStyle
		levelIcon = "D"
	}
	parts = append(parts, levelStyle.Render(levelIcon))

	if entry.CycleID != "" && p.filter != FilterCycle {
		id := entry.CycleID
		if len(id) > 6 {
			id = id[:6]
		}
		parts = append(parts, p.cycleStyle.Render("["+id+"]"))
	}

	maxMsgLen := max(20, p.width-25)
	msg := entry.Message
	if r := []rune(msg); len(r) > maxMsgLen {
		msg = string(r[:maxMsgLen-3]) + "..."
	}
	parts = append(parts, p.messageStyle.Render(msg))

	return strings.Join(parts, " ")
}

// LogCount returns the total number of logs.
func (p *LogsPanel) LogCount() int {
	return len(p.logs)
}

// FilteredCount returns the number of logs matching current filter.
func (p *LogsPanel) FilteredCount() int {
	return len(p.filteredLogs())
}

// CurrentFilter returns the current filter value.
func (p *LogsPanel) CurrentFilter() string {
	return p.filter
}
