// Package fs provides a file system-based credential store for the
// hybridauth client.
package fs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Store persists key/value credentials as a JSON file on the filesystem.
// It implements the client.Store contract: methods are total, and write
// failures are logged rather than surfaced (the Fallback wrapper's probe is
// the mechanism that detects an unusable store).
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// sessionFile is the JSON structure stored on disk
type sessionFile struct {
	Values map[string]string `json:"values"`
}

// New creates a new FS-based credential store.
// If path is empty, defaults to ~/.config/<appName>/session.json
func New(path string, appName string) (*Store, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("could not determine config directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
		if appName == "" {
			appName = "imsop"
		}
		path = filepath.Join(configDir, appName, "session.json")
	}

	store := &Store{
		path:   path,
		values: make(map[string]string),
	}

	// Load existing values if the file exists
	if err := store.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return store, nil
}

// load reads values from disk
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	s.values = file.Values
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return nil
}

func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.saveLocked()
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.saveLocked()
}

// saveLocked persists values to disk. Caller must hold s.mu.
func (s *Store) saveLocked() {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Printf("session store: failed to create config directory: %v", err)
		return
	}

	data, err := json.MarshalIndent(sessionFile{Values: s.values}, "", "  ")
	if err != nil {
		log.Printf("session store: failed to serialize: %v", err)
		return
	}

	// Restricted permissions: the file holds bearer credentials.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		log.Printf("session store: failed to write %s: %v", s.path, err)
	}
}

// Path returns the path to the session file
func (s *Store) Path() string {
	return s.path
}
