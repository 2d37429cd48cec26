// Package session persists the conversation thread identifier between runs.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StorageKey is the browser localStorage key used by the web widget. The file
// store plays the same role for the terminal client.
const StorageKey = "legalflow_thread_id"

// NewThreadID returns a random UUID, or the current Unix time in
// milliseconds if the random source fails.
func NewThreadID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Warn("thread_id_uuid_fallback", "error", err)
		return strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return id.String()
}

// Store keeps the thread identifier in a single file.
type Store struct {
	mu    sync.Mutex
	path  string
	newID func() string
}

// NewStore creates a store backed by path. The file is created on first Load.
func NewStore(path string) *Store {
	return &Store{path: path, newID: NewThreadID}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored identifier, generating and persisting one when the
// file is missing or blank.
func (s *Store) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read thread file: %w", err)
	}
	if id := strings.TrimSpace(string(data)); id != "" {
		slog.Debug("thread_id_loaded", "path", s.path)
		return id, nil
	}

	id := s.newID()
	if err := s.write(id); err != nil {
		return "", err
	}
	slog.Info("thread_id_created", "path", s.path, "thread_id", id)
	return id, nil
}

// Save replaces the stored identifier. Blank identifiers are rejected.
func (s *Store) Save(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("thread id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(id); err != nil {
		return err
	}
	slog.Info("thread_id_saved", "path", s.path, "thread_id", id)
	return nil
}

// Reset discards the stored identifier and persists a fresh one.
func (s *Store) Reset() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if err := s.write(id); err != nil {
		return "", err
	}
	slog.Info("thread_id_reset", "path", s.path, "thread_id", id)
	return id, nil
}

func (s *Store) write(id string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create thread directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(id+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write thread file: %w", err)
	}
	return nil
}
