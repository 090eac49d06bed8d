package tui

// PanelDimensions holds calculated dimensions for each panel in the layout.
type PanelDimensions struct {
	// ConversationWidth is the width of the conversation panel (left).
	ConversationWidth int
	// ActivityWidth is the width of the activity panel (right).
	ActivityWidth int
	// ContentHeight is the height available for panel content.
	ContentHeight int
}

// LayoutManager calculates panel dimensions based on terminal size.
type LayoutManager struct {
	totalWidth   int
	totalHeight  int
	headerHeight int
	// footerHeight covers the input box (3) and the status line (1).
	footerHeight int
}

// NewLayoutManager creates a new LayoutManager with the given terminal dimensions.
func NewLayoutManager(width, height int) *LayoutManager {
	return &LayoutManager{
		totalWidth:   width,
		totalHeight:  height,
		headerHeight: 9,
		footerHeight: 4,
	}
}

// SetSize updates the terminal dimensions.
func (l *LayoutManager) SetSize(width, height int) {
	l.totalWidth = width
	l.totalHeight = height
}

// Calculate returns the panel dimensions based on current terminal size.
// Layout ratios: Conversation 65%, Activity 35%. Narrow terminals drop the
// activity panel.
func (l *LayoutManager) Calculate() PanelDimensions {
	const (
		minConversationWidth = 30
		minActivityWidth     = 24
	)

	conversationWidth := l.totalWidth * 65 / 100
	activityWidth := l.totalWidth - conversationWidth

	if conversationWidth < minConversationWidth || activityWidth < minActivityWidth {
		conversationWidth = l.totalWidth
		activityWidth = 0
	}

	contentHeight := l.totalHeight - l.headerHeight - l.footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	return PanelDimensions{
		ConversationWidth: conversationWidth,
		ActivityWidth:     activityWidth,
		ContentHeight:     contentHeight,
	}
}

// TotalWidth returns the current terminal width.
func (l *LayoutManager) TotalWidth() int {
	return l.totalWidth
}

// TotalHeight returns the current terminal height.
func (l *LayoutManager) TotalHeight() int {
	return l.totalHeight
}

// HeaderHeight returns the height reserved for the header.
func (l *LayoutManager) HeaderHeight() int {
	return l.headerHeight
}

// SetHeaderHeight sets the header height (use 0 to disable header).
func (l *LayoutManager) SetHeaderHeight(height int) {
	l.headerHeight = height
}
