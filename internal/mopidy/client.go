// Package mopidy talks MPD to a Mopidy (or plain MPD) server. It
// exposes only the narrow session surface the music worker needs, so
// the worker can run against a fake in tests.
package mopidy

import (
	"fmt"
	"log/slog"

	"github.com/fhs/gompd/v2/mpd"
)

// Session is one live MPD connection. Any method returning an error
// leaves the session in an unknown state; callers close it and redial.
type Session interface {
	Status() (map[string]string, error)
	CurrentSong() (map[string]string, error)
	Playlists() ([]string, error)

	Play() error
	Pause() error
	Next() error
	Previous() error
	Random(on bool) error
	Repeat(on bool) error
	Clear() error
	Load(name string) error

	Close() error
}

// Dialer establishes a Session. The music worker takes one of these
// instead of a concrete address so tests can inject failures.
type Dialer func() (Session, error)

// NewDialer returns a Dialer for the given host and port.
func NewDialer(host string, port int, logger *slog.Logger) Dialer {
	if logger == nil {
		logger = slog.Default()
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	return func() (Session, error) {
		client, err := mpd.Dial("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("mpd dial %s: %w", addr, err)
		}
		logger.Debug("mpd connected", "addr", addr)
		return &session{client: client}, nil
	}
}

type session struct {
	client *mpd.Client
}

func (s *session) Status() (map[string]string, error) {
	return s.client.Status()
}

func (s *session) CurrentSong() (map[string]string, error) {
	return s.client.CurrentSong()
}

// Playlists returns stored playlist names in server order.
func (s *session) Playlists() ([]string, error) {
	attrs, err := s.client.ListPlaylists()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a["playlist"])
	}
	return names, nil
}

func (s *session) Play() error     { return s.client.Play(-1) }
func (s *session) Pause() error    { return s.client.Pause(true) }
func (s *session) Next() error     { return s.client.Next() }
func (s *session) Previous() error { return s.client.Previous() }

func (s *session) Random(on bool) error { return s.client.Random(on) }
func (s *session) Repeat(on bool) error { return s.client.Repeat(on) }

func (s *session) Clear() error { return s.client.Clear() }

// Load replaces the queue with a stored playlist. The whole playlist
// is loaded; MPD takes -1,-1 as the full range.
func (s *session) Load(name string) error {
	return s.client.PlaylistLoad(name, -1, -1)
}

func (s *session) Close() error { return s.client.Close() }
