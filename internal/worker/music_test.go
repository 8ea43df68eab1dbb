package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mpetrik/skydeck/internal/domain"
	"github.com/mpetrik/skydeck/internal/mopidy"
)

// fakeSession records every call so tests can assert command wiring.
type fakeSession struct {
	status map[string]string
	song   map[string]string
	names  []string

	failStatus bool

	calls  []string
	closed bool
}

func (f *fakeSession) Status() (map[string]string, error) {
	f.calls = append(f.calls, "status")
	if f.failStatus {
		return nil, errors.New("connection reset")
	}
	return f.status, nil
}

func (f *fakeSession) CurrentSong() (map[string]string, error) {
	f.calls = append(f.calls, "currentsong")
	return f.song, nil
}

func (f *fakeSession) Playlists() ([]string, error) {
	f.calls = append(f.calls, "playlists")
	return f.names, nil
}

func (f *fakeSession) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeSession) Play() error     { return f.record("play") }
func (f *fakeSession) Pause() error    { return f.record("pause") }
func (f *fakeSession) Next() error     { return f.record("next") }
func (f *fakeSession) Previous() error { return f.record("previous") }

func (f *fakeSession) Random(on bool) error {
	if on {
		return f.record("random:on")
	}
	return f.record("random:off")
}

func (f *fakeSession) Repeat(on bool) error {
	if on {
		return f.record("repeat:on")
	}
	return f.record("repeat:off")
}

func (f *fakeSession) Clear() error { return f.record("clear") }

func (f *fakeSession) Load(name string) error { return f.record("load:" + name) }

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

// fakeDialer fails a fixed number of dials before handing out the
// session.
type fakeDialer struct {
	failures int
	dials    int
	session  *fakeSession
}

func (d *fakeDialer) dial() (mopidy.Session, error) {
	d.dials++
	if d.dials <= d.failures {
		return nil, errors.New("connection refused")
	}
	return d.session, nil
}

func playingSession() *fakeSession {
	return &fakeSession{
		status: map[string]string{
			"state": "play", "elapsed": "42.5", "duration": "180",
			"random": "1", "repeat": "0",
		},
		song:  map[string]string{"Title": "Test Song", "Artist": "Test Artist", "Album": "Test Album"},
		names: []string{"Morning", "Focus"},
	}
}

func recvTrack(t *testing.T, w *MusicWorker) domain.TrackRecord {
	t.Helper()
	select {
	case rec := <-w.Tracks():
		return rec
	default:
		t.Fatal("Expected a published track record, channel empty")
		return domain.TrackRecord{}
	}
}

func TestMusicWorkerFallbackWhileUnreachable(t *testing.T) {
	dialer := &fakeDialer{failures: 1 << 30}
	w := NewMusicWorker(dialer.dial, time.Second, nil)

	fallback := domain.FallbackTrack()
	for i := 0; i < 5; i++ {
		w.tick()

		if got := recvTrack(t, w); got != fallback {
			t.Errorf("Tick %d: expected fallback track, got %+v", i, got)
		}
		if w.State() == domain.Connected {
			t.Fatalf("Tick %d: worker must never report Connected", i)
		}
	}

	if dialer.dials != 5 {
		t.Errorf("Expected one dial per tick (5), got %d", dialer.dials)
	}
}

func TestMusicWorkerConnectsAfterFailures(t *testing.T) {
	dialer := &fakeDialer{failures: 3, session: playingSession()}
	w := NewMusicWorker(dialer.dial, time.Second, nil)

	for i := 0; i < 3; i++ {
		w.tick()
		if got := recvTrack(t, w); got != domain.FallbackTrack() {
			t.Errorf("Tick %d: expected fallback while failing, got %+v", i, got)
		}
		if w.State() != domain.Disconnected {
			t.Errorf("Tick %d: expected Disconnected, got %s", i, w.State())
		}
	}

	w.tick()
	if w.State() != domain.Connected {
		t.Fatalf("Expected Connected after successful dial, got %s", w.State())
	}
	got := recvTrack(t, w)
	if got.Title != "Test Song" || got.State != domain.StatePlaying || !got.Shuffle {
		t.Errorf("Expected normalized live record, got %+v", got)
	}

	// Further ticks reuse the session instead of redialing.
	w.tick()
	if dialer.dials != 4 {
		t.Errorf("Expected 4 dials total, got %d", dialer.dials)
	}
	if w.State() != domain.Connected {
		t.Errorf("Expected to stay Connected, got %s", w.State())
	}
}

func TestMusicWorkerPollFailureDisconnects(t *testing.T) {
	session := playingSession()
	dialer := &fakeDialer{session: session}
	w := NewMusicWorker(dialer.dial, time.Second, nil)

	w.tick()
	if w.State() != domain.Connected {
		t.Fatalf("Expected Connected, got %s", w.State())
	}
	recvTrack(t, w)

	session.failStatus = true
	w.tick()

	if w.State() != domain.Disconnected {
		t.Errorf("Expected Disconnected after poll failure, got %s", w.State())
	}
	if !session.closed {
		t.Error("Expected failed session to be closed")
	}
	if got := recvTrack(t, w); got != domain.FallbackTrack() {
		t.Errorf("Expected fallback after poll failure, got %+v", got)
	}
}

func TestMusicWorkerCommandWhileDisconnectedHasNoEffect(t *testing.T) {
	session := playingSession()
	session.status["random"] = "0"
	dialer := &fakeDialer{failures: 1, session: session}
	w := NewMusicWorker(dialer.dial, time.Second, nil)

	w.tick() // dial fails, disconnected
	recvTrack(t, w)

	w.SetShuffle(true)
	w.execute(<-w.cmds) // dropped: no session

	w.tick() // now connects and polls
	got := recvTrack(t, w)

	if got.Shuffle {
		t.Error("Command issued while disconnected must not affect the next record")
	}
	for _, call := range session.calls {
		if call == "random:on" {
			t.Error("Dropped command must never reach the backend")
		}
	}
}

func TestMusicWorkerPlayPauseToggle(t *testing.T) {
	session := playingSession()
	dialer := &fakeDialer{session: session}
	w := NewMusicWorker(dialer.dial, time.Second, nil)
	w.tick()

	// Playing -> pause.
	w.PlayPause()
	w.execute(<-w.cmds)
	if last := session.calls[len(session.calls)-1]; last != "pause" {
		t.Errorf("Expected pause while playing, got %q", last)
	}

	// Paused -> play.
	session.status["state"] = "pause"
	w.PlayPause()
	w.execute(<-w.cmds)
	if last := session.calls[len(session.calls)-1]; last != "play" {
		t.Errorf("Expected play while paused, got %q", last)
	}
}

func TestMusicWorkerLoadPlaylist(t *testing.T) {
	session := playingSession()
	dialer := &fakeDialer{session: session}
	w := NewMusicWorker(dialer.dial, time.Second, nil)
	w.tick()

	mark := len(session.calls)
	w.LoadPlaylist("Focus")
	w.execute(<-w.cmds)

	got := session.calls[mark:]
	want := []string{"clear", "load:Focus", "play"}
	if len(got) != len(want) {
		t.Fatalf("Expected calls %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected calls %v, got %v", want, got)
		}
	}
}

func TestMusicWorkerCommandFailureDisconnects(t *testing.T) {
	session := playingSession()
	dialer := &fakeDialer{session: session}
	w := NewMusicWorker(dialer.dial, time.Second, nil)
	w.tick()

	session.failStatus = true // playPause queries status first
	w.PlayPause()
	w.execute(<-w.cmds)

	if w.State() != domain.Disconnected {
		t.Errorf("Expected Disconnected after command failure, got %s", w.State())
	}
	if !session.closed {
		t.Error("Expected session to be closed after command failure")
	}
}

func TestMusicWorkerNotConfigured(t *testing.T) {
	w := NewMusicWorker(nil, time.Second, nil)

	w.tick()
	if got := recvTrack(t, w); got != domain.FallbackTrack() {
		t.Errorf("Expected fallback when not configured, got %+v", got)
	}
	if w.State() != domain.Disconnected {
		t.Errorf("Expected Disconnected when not configured, got %s", w.State())
	}
}

func TestMusicWorkerStopsWithinInterval(t *testing.T) {
	dialer := &fakeDialer{failures: 1 << 30}
	w := NewMusicWorker(dialer.dial, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop after cancellation")
	}
}

func TestNormalizeTrackDefaults(t *testing.T) {
	got := normalizeTrack(map[string]string{}, map[string]string{})

	if got.Title != "Unknown" || got.Artist != "Unknown" || got.Album != "" {
		t.Errorf("Expected Unknown/Unknown/empty, got %q/%q/%q", got.Title, got.Artist, got.Album)
	}
	if got.Duration != 0 || got.Elapsed != 0 {
		t.Errorf("Expected zero times, got %f/%f", got.Elapsed, got.Duration)
	}
	if got.State != domain.StateStopped || got.Shuffle || got.Loop {
		t.Errorf("Expected stopped with flags off, got %+v", got)
	}
}

func TestNormalizeTrackMalformedNumerics(t *testing.T) {
	status := map[string]string{"elapsed": "abc", "duration": "-5"}
	got := normalizeTrack(status, map[string]string{})

	if got.Elapsed != 0 || got.Duration != 0 {
		t.Errorf("Expected malformed numerics to default to 0, got %f/%f", got.Elapsed, got.Duration)
	}
}

func TestPublishKeepsLatest(t *testing.T) {
	ch := make(chan int, 1)
	publish(ch, 1)
	publish(ch, 2)

	if got := <-ch; got != 2 {
		t.Errorf("Expected latest value 2, got %d", got)
	}
}
