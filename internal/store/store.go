// Package store persists small bits of UI state so the kiosk comes
// back up where it left off after a power cycle.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketUI = []byte("ui")
	keyState = []byte("state")
)

// View names persisted in UIState.
const (
	ViewNowPlaying = "nowplaying"
	ViewPlaylists  = "playlists"
)

// UIState is everything the presentation layer wants to survive a
// restart.
type UIState struct {
	View           string `json:"view"`
	SidebarVisible bool   `json:"sidebar_visible"`
	PlaylistCursor int    `json:"playlist_cursor"`
}

// UIStore persists UIState in a BoltDB file.
type UIStore struct {
	db     *bolt.DB
	logger *slog.Logger
}

// Open opens (or creates) the state database. The bolt open timeout
// keeps a stale lock from blocking kiosk startup.
func Open(path string, logger *slog.Logger) (*UIStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUI)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &UIStore{db: db, logger: logger}, nil
}

// Load returns the persisted state, or defaults when nothing (or
// something unreadable) is stored.
func (s *UIStore) Load(defaults UIState) UIState {
	state := defaults
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketUI).Get(keyState)
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &state)
	})
	if err != nil {
		s.logger.Warn("failed to load ui state, using defaults", "error", err)
		return defaults
	}
	return state
}

// Save persists the state. Failures are logged and swallowed; losing
// UI state on the next boot is not worth surfacing to the kiosk.
func (s *UIStore) Save(state UIState) {
	raw, err := json.Marshal(state)
	if err != nil {
		s.logger.Warn("failed to encode ui state", "error", err)
		return
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUI).Put(keyState, raw)
	})
	if err != nil {
		s.logger.Warn("failed to save ui state", "error", err)
	}
}

// Close closes the underlying database.
func (s *UIStore) Close() error {
	return s.db.Close()
}
