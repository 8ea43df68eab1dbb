package worker

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/mpetrik/skydeck/internal/domain"
	"github.com/mpetrik/skydeck/internal/mopidy"
)

type musicCommandKind int

const (
	cmdPlayPause musicCommandKind = iota
	cmdNext
	cmdPrevious
	cmdShuffle
	cmdLoop
	cmdLoadPlaylist
)

type musicCommand struct {
	kind musicCommandKind
	flag bool
	name string
}

// commandBuffer bounds how many unexecuted commands may queue against
// a slow backend before button presses start getting dropped.
const commandBuffer = 8

// MusicWorker maintains the connection to the music backend. It polls
// status, current song and playlists every tick and executes playback
// commands between polls. The connection and all MPD traffic stay on
// the worker's own goroutine.
type MusicWorker struct {
	dial     mopidy.Dialer
	interval time.Duration
	logger   *slog.Logger

	session mopidy.Session
	state   atomic.Int32

	warnedNoBackend bool

	tracks    chan domain.TrackRecord
	playlists chan domain.PlaylistSet
	cmds      chan musicCommand
}

// NewMusicWorker creates a music worker. A nil dialer puts the worker
// into permanent fallback mode (backend not configured): it publishes
// mock data every tick and never dials.
func NewMusicWorker(dial mopidy.Dialer, interval time.Duration, logger *slog.Logger) *MusicWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &MusicWorker{
		dial:      dial,
		interval:  interval,
		logger:    logger,
		tracks:    make(chan domain.TrackRecord, 1),
		playlists: make(chan domain.PlaylistSet, 1),
		cmds:      make(chan musicCommand, commandBuffer),
	}
}

// Tracks is the worker's record stream. Only the latest record is
// retained for the consumer.
func (w *MusicWorker) Tracks() <-chan domain.TrackRecord { return w.tracks }

// Playlists is the worker's playlist stream.
func (w *MusicWorker) Playlists() <-chan domain.PlaylistSet { return w.playlists }

// State reports the current connection state.
func (w *MusicWorker) State() domain.ConnState {
	return domain.ConnState(w.state.Load())
}

// Run drives the poll loop until ctx is cancelled. The first poll
// happens immediately; later polls follow the configured interval.
func (w *MusicWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.dropSession()

	w.tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick()
		case cmd := <-w.cmds:
			w.execute(cmd)
		}
	}
}

// PlayPause toggles playback based on the backend's current state.
func (w *MusicWorker) PlayPause() { w.send(musicCommand{kind: cmdPlayPause}) }

// Next skips to the next track.
func (w *MusicWorker) Next() { w.send(musicCommand{kind: cmdNext}) }

// Previous returns to the previous track.
func (w *MusicWorker) Previous() { w.send(musicCommand{kind: cmdPrevious}) }

// SetShuffle sets shuffle mode. This is an absolute set, not a toggle;
// callers derive the target from the last published record.
func (w *MusicWorker) SetShuffle(on bool) { w.send(musicCommand{kind: cmdShuffle, flag: on}) }

// SetLoop sets repeat mode.
func (w *MusicWorker) SetLoop(on bool) { w.send(musicCommand{kind: cmdLoop, flag: on}) }

// LoadPlaylist clears the queue, loads the named playlist and starts
// playback.
func (w *MusicWorker) LoadPlaylist(name string) {
	w.send(musicCommand{kind: cmdLoadPlaylist, name: name})
}

// send queues a command without blocking. Commands are best-effort: a
// full queue drops the command rather than stalling the caller.
func (w *MusicWorker) send(cmd musicCommand) {
	select {
	case w.cmds <- cmd:
	default:
		w.logger.Debug("music command dropped, queue full")
	}
}

func (w *MusicWorker) tick() {
	if w.dial == nil {
		if !w.warnedNoBackend {
			w.logger.Warn("music backend not configured, publishing mock data")
			w.warnedNoBackend = true
		}
		w.publishFallback()
		return
	}

	if w.session == nil {
		if !w.connect() {
			w.publishFallback()
			return
		}
	}
	w.poll()
}

func (w *MusicWorker) connect() bool {
	w.state.Store(int32(domain.Connecting))
	session, err := w.dial()
	if err != nil {
		w.logger.Debug("music connect failed", "error", err)
		w.state.Store(int32(domain.Disconnected))
		return false
	}
	w.session = session
	w.state.Store(int32(domain.Connected))
	w.logger.Info("music backend connected")
	return true
}

func (w *MusicWorker) poll() {
	status, err := w.session.Status()
	if err != nil {
		w.pollFailed("status", err)
		return
	}
	song, err := w.session.CurrentSong()
	if err != nil {
		w.pollFailed("currentsong", err)
		return
	}
	names, err := w.session.Playlists()
	if err != nil {
		w.pollFailed("playlists", err)
		return
	}

	publish(w.tracks, normalizeTrack(status, song))
	publish(w.playlists, domain.PlaylistSet{Names: names})
}

// pollFailed discards the in-flight result and degrades to
// Disconnected; the next tick dials again.
func (w *MusicWorker) pollFailed(op string, err error) {
	w.logger.Warn("music poll failed", "op", op, "error", err)
	w.dropSession()
	w.publishFallback()
}

func (w *MusicWorker) execute(cmd musicCommand) {
	if w.session == nil {
		// Fire-and-forget: commands while disconnected just vanish.
		w.logger.Debug("music command ignored, not connected")
		return
	}

	var err error
	switch cmd.kind {
	case cmdPlayPause:
		err = w.playPause()
	case cmdNext:
		err = w.session.Next()
	case cmdPrevious:
		err = w.session.Previous()
	case cmdShuffle:
		err = w.session.Random(cmd.flag)
	case cmdLoop:
		err = w.session.Repeat(cmd.flag)
	case cmdLoadPlaylist:
		err = w.loadPlaylist(cmd.name)
	}

	if err != nil {
		w.logger.Warn("music command failed", "error", err)
		w.dropSession()
	}
}

// playPause resolves the toggle against a fresh status query so it
// follows the backend's idea of "playing", not a possibly stale record.
func (w *MusicWorker) playPause() error {
	status, err := w.session.Status()
	if err != nil {
		return err
	}
	if status["state"] == "play" {
		return w.session.Pause()
	}
	return w.session.Play()
}

func (w *MusicWorker) loadPlaylist(name string) error {
	if err := w.session.Clear(); err != nil {
		return err
	}
	if err := w.session.Load(name); err != nil {
		return err
	}
	return w.session.Play()
}

func (w *MusicWorker) publishFallback() {
	publish(w.tracks, domain.FallbackTrack())
	publish(w.playlists, domain.FallbackPlaylists())
}

func (w *MusicWorker) dropSession() {
	if w.session != nil {
		w.session.Close()
		w.session = nil
	}
	w.state.Store(int32(domain.Disconnected))
}

// normalizeTrack maps raw MPD attribute maps to a TrackRecord. Absent
// fields get the documented defaults.
func normalizeTrack(status, song map[string]string) domain.TrackRecord {
	title := song["Title"]
	if title == "" {
		title = song["title"]
	}
	if title == "" {
		title = "Unknown"
	}
	artist := song["Artist"]
	if artist == "" {
		artist = song["artist"]
	}
	if artist == "" {
		artist = "Unknown"
	}
	album := song["Album"]
	if album == "" {
		album = song["album"]
	}

	return domain.TrackRecord{
		Title:    title,
		Artist:   artist,
		Album:    album,
		Duration: parseSeconds(status["duration"]),
		Elapsed:  parseSeconds(status["elapsed"]),
		State:    domain.ParsePlayState(status["state"]),
		Shuffle:  status["random"] == "1",
		Loop:     status["repeat"] == "1",
	}
}

// parseSeconds parses a string-encoded duration, treating absent,
// malformed or negative values as zero.
func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
