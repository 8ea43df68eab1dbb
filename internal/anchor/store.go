// Package anchor persists the free-will cycle anchor: a single real
// timestamp written once and reused across runs.
package anchor

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Store reads and writes the anchor file. The file holds one
// floating-point number: seconds since the Unix epoch.
type Store struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewStore creates a store backed by the given filesystem. Tests pass
// an afero memory fs; production passes afero.NewOsFs().
func NewStore(fs afero.Fs, path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{fs: fs, path: path, logger: logger}
}

// Load returns the persisted anchor, or initializes it to now when the
// file is absent or unreadable. Storage failures are swallowed: the
// worst case is an anchor that resets on the next restart.
func (s *Store) Load(now time.Time) time.Time {
	raw, err := afero.ReadFile(s.fs, s.path)
	if err == nil {
		if anchor, perr := parseAnchor(string(raw)); perr == nil {
			return anchor
		}
		s.logger.Warn("anchor file corrupt, resetting", "path", s.path)
	}

	s.save(now)
	return now
}

func (s *Store) save(anchor time.Time) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			s.logger.Warn("failed to create anchor directory", "error", err)
			return
		}
	}
	sec := float64(anchor.UnixNano()) / float64(time.Second)
	data := strconv.FormatFloat(sec, 'f', -1, 64)
	if err := afero.WriteFile(s.fs, s.path, []byte(data), 0644); err != nil {
		s.logger.Warn("failed to persist anchor", "error", err)
	}
}

func parseAnchor(raw string) (time.Time, error) {
	sec, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, err
	}
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		return time.Time{}, fmt.Errorf("anchor out of range: %f", sec)
	}
	return time.Unix(0, int64(sec*float64(time.Second))), nil
}
