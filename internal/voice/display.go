package voice

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/ShayCichocki/vox/pkg/models"
)

// Line is one entry shown to the user.
type Line struct {
	Role    models.Role
	Speaker string
	Text    string
}

// String renders the line as "<Speaker> : <Text>".
func (l Line) String() string {
	if l.Speaker == "" {
		return l.Text
	}
	return l.Speaker + " : " + l.Text
}

// Display shows conversation lines and status changes.
type Display interface {
	Show(line Line)
	Status(label string)
}

// DisplayFunc adapts a function to Display; status changes are ignored.
type DisplayFunc func(Line)

// Show calls f.
func (f DisplayFunc) Show(line Line) { f(line) }

// Status does nothing.
func (DisplayFunc) Status(string) {}

// ConsoleDisplay prints colored lines to a writer.
type ConsoleDisplay struct {
	mu        sync.Mutex
	w         io.Writer
	user      *color.Color
	assistant *color.Color
	status    *color.Color
	last      string
}

// NewConsoleDisplay writes to w.
func NewConsoleDisplay(w io.Writer) *ConsoleDisplay {
	return &ConsoleDisplay{
		w:         w,
		user:      color.New(color.FgCyan, color.Bold),
		assistant: color.New(color.FgGreen),
		status:    color.New(color.FgHiBlack, color.Italic),
	}
}

// Show prints a conversation line.
func (d *ConsoleDisplay) Show(line Line) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := d.assistant
	if line.Role == models.RoleUser {
		c = d.user
	}
	c.Fprintln(d.w, line.String())
}

// Status prints a status label when it changes.
func (d *ConsoleDisplay) Status(label string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if label == d.last {
		return
	}
	d.last = label
	d.status.Fprintln(d.w, fmt.Sprintf("[%s]", label))
}
