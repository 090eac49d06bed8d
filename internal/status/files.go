package status

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ShayCichocki/vox/pkg/models"
)

const (
	// StatusFile holds the current status label.
	StatusFile = "Status.data"
	// MicFile holds "True" or "False".
	MicFile = "Mic.data"
)

// FileMirror copies channel writes into two files under dir so that other
// processes (vox status, vox mic) can read and toggle them. It also watches
// the mic file and feeds external edits back into the channel.
type FileMirror struct {
	dir string
	ch  *Channel

	mu      sync.Mutex
	lastMic string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileMirror attaches a mirror to ch, writing under dir.
func NewFileMirror(dir string, ch *Channel) (*FileMirror, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create status directory: %w", err)
	}

	m := &FileMirror{
		dir:  dir,
		ch:   ch,
		done: make(chan struct{}),
	}
	if err := m.write(); err != nil {
		return nil, err
	}
	ch.Observe(func(Snapshot) {
		// Best effort: the in-memory slots stay authoritative.
		_ = m.write()
	})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without watcher; Sync covers external edits.
		return m, nil
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return m, nil
	}
	m.watcher = watcher

	go m.watch()

	return m, nil
}

// write mirrors the channel's current slots. The snapshot is taken under
// the lock so concurrent writers cannot leave an older value on disk.
func (m *FileMirror) write() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ch.Snapshot()
	if err := os.WriteFile(filepath.Join(m.dir, StatusFile), []byte(s.Status.Label()), 0644); err != nil {
		return fmt.Errorf("write status file: %w", err)
	}
	mic := formatMic(s.Mic)
	if err := os.WriteFile(filepath.Join(m.dir, MicFile), []byte(mic), 0644); err != nil {
		return fmt.Errorf("write mic file: %w", err)
	}
	m.lastMic = mic
	return nil
}

// watch applies external mic edits.
func (m *FileMirror) watch() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != MicFile {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				m.Sync()
			}
		case <-m.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// Sync reads the mic file and applies it to the channel when it holds
// something other than the mirror's own last write.
func (m *FileMirror) Sync() {
	m.mu.Lock()
	data, err := os.ReadFile(filepath.Join(m.dir, MicFile))
	if err != nil {
		m.mu.Unlock()
		return
	}
	raw := strings.TrimSpace(string(data))
	mic, ok := parseMic(raw)
	if !ok || raw == m.lastMic {
		m.mu.Unlock()
		return
	}
	m.lastMic = formatMic(mic)
	m.mu.Unlock()

	if mic != m.ch.GetMic() {
		m.ch.SetMic(mic)
	}
}

// Close stops the watcher.
func (m *FileMirror) Close() error {
	select {
	case <-m.done:
		return nil
	default:
		close(m.done)
	}
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// ReadFiles reads the mirrored slots from dir.
func ReadFiles(dir string) (label string, mic bool, err error) {
	statusData, err := os.ReadFile(filepath.Join(dir, StatusFile))
	if err != nil {
		return "", false, fmt.Errorf("read status file: %w", err)
	}
	micData, err := os.ReadFile(filepath.Join(dir, MicFile))
	if err != nil {
		return "", false, fmt.Errorf("read mic file: %w", err)
	}
	mic, _ = parseMic(string(micData))
	return strings.TrimSpace(string(statusData)), mic, nil
}

// WriteMicFile sets the mirrored mic flag in dir. A running mirror picks it up.
func WriteMicFile(dir string, enabled bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create status directory: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, MicFile), []byte(formatMic(enabled)), 0644)
}

func formatMic(enabled bool) string {
	if enabled {
		return "True"
	}
	return "False"
}

func parseMic(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1":
		return true, true
	case "false", "off", "0":
		return false, true
	default:
		return false, false
	}
}

// StatusFromLabel maps a mirrored label back to its status.
func StatusFromLabel(label string) models.AssistantStatus {
	for _, s := range []models.AssistantStatus{
		models.StatusReady, models.StatusThinking, models.StatusSearching,
		models.StatusAnswering, models.StatusExecuting, models.StatusAvailable,
	} {
		if s.Label() == label {
			return s
		}
	}
	return models.AssistantStatus(label)
}
