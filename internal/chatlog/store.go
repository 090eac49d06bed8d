// Package chatlog persists the conversation between the user and the
// assistant as a JSON array of role/content records.
package chatlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/pkg/models"
)

// FileName is the chat log file name inside the data directory.
const FileName = "ChatLog.json"

// ErrCorrupt is returned when the log could not be decoded and was reset.
var ErrCorrupt = errors.New("chat log corrupt")

// Store is a single-writer JSON chat log. Read-modify-write cycles are
// serialised by the store's mutex.
type Store struct {
	path   string
	logger logging.Logger

	mu sync.Mutex
}

// New creates a Store at path. The file is created lazily.
func New(path string, logger logging.Logger) *Store {
	return &Store{path: path, logger: logging.OrNop(logger)}
}

// Path returns the log file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored messages. A missing file is an empty log.
// An undecodable file is reset to an empty log and ErrCorrupt is returned
// alongside the (empty) result.
func (s *Store) Load() ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]models.ChatMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.ChatMessage{}, nil
	}
	if err != nil {
		return s.recoverLocked(fmt.Errorf("read %s: %w", s.path, err))
	}

	var msgs []models.ChatMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return s.recoverLocked(fmt.Errorf("decode %s: %w", s.path, err))
	}
	for _, m := range msgs {
		if !m.Role.Valid() {
			return s.recoverLocked(fmt.Errorf("decode %s: invalid role %q", s.path, m.Role))
		}
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return msgs, nil
}

func (s *Store) recoverLocked(cause error) ([]models.ChatMessage, error) {
	s.logger.Warn("chatlog", "resetting unreadable chat log", logging.Fields{
		"path":  s.path,
		"error": cause,
	})
	if err := s.saveLocked(nil); err != nil {
		return []models.ChatMessage{}, fmt.Errorf("%w: %v (reset failed: %v)", ErrCorrupt, cause, err)
	}
	return []models.ChatMessage{}, fmt.Errorf("%w: %v", ErrCorrupt, cause)
}

// Save replaces the log with msgs.
func (s *Store) Save(msgs []models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(msgs)
}

func (s *Store) saveLocked(msgs []models.ChatMessage) error {
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	data, err := json.MarshalIndent(msgs, "", "    ")
	if err != nil {
		return fmt.Errorf("encode chat log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create chat log directory: %w", err)
	}

	// Write-then-rename so readers never see a partial file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write chat log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace chat log: %w", err)
	}
	return nil
}

// Append adds msgs to the end of the log. A corrupt log is reset first and
// the append still happens.
func (s *Store) Append(msgs ...models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return err
	}
	return s.saveLocked(append(current, msgs...))
}

// Reset empties the log.
func (s *Store) Reset() error {
	return s.Save(nil)
}

// Watch calls onChange whenever the log file is written, until ctx is
// cancelled. It returns once the watch is established.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create chat log directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	name := filepath.Base(s.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Debug("chatlog", "watcher error", logging.Fields{"error": err})
			}
		}
	}()
	return nil
}
