package anchor

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestLoadMissingFileInitializesToNow(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/.fw_anchor", nil)
	now := time.Unix(1700000000, 0)

	got := store.Load(now)
	if !got.Equal(now) {
		t.Errorf("Expected anchor %v for missing file, got %v", now, got)
	}

	// The anchor must have been written back so the next run reuses it.
	exists, err := afero.Exists(fs, "/data/.fw_anchor")
	if err != nil || !exists {
		t.Fatalf("Expected anchor file to be written, exists=%v err=%v", exists, err)
	}
}

func TestLoadPersistedAnchorSurvivesRestart(t *testing.T) {
	fs := afero.NewMemMapFs()
	first := time.Unix(1700000000, 0)

	NewStore(fs, "/data/.fw_anchor", nil).Load(first)

	// Second run, later wall clock: must read the original anchor.
	later := first.Add(48 * time.Hour)
	got := NewStore(fs, "/data/.fw_anchor", nil).Load(later)

	if !got.Equal(first) {
		t.Errorf("Expected persisted anchor %v, got %v", first, got)
	}
}

func TestLoadCorruptFileResets(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/.fw_anchor", []byte("not a number"), 0644); err != nil {
		t.Fatal(err)
	}

	now := time.Unix(1700000000, 0)
	got := NewStore(fs, "/data/.fw_anchor", nil).Load(now)

	if !got.Equal(now) {
		t.Errorf("Expected corrupt anchor to reset to %v, got %v", now, got)
	}

	// And the rewrite must stick.
	again := NewStore(fs, "/data/.fw_anchor", nil).Load(now.Add(time.Hour))
	if !again.Equal(now) {
		t.Errorf("Expected rewritten anchor %v, got %v", now, again)
	}
}

func TestLoadReadOnlyFilesystemFallsBackToNow(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	now := time.Unix(1700000000, 0)

	got := NewStore(fs, "/data/.fw_anchor", nil).Load(now)
	if !got.Equal(now) {
		t.Errorf("Expected fallback to now on unwritable store, got %v", got)
	}
}

func TestParseAnchorFractionalSeconds(t *testing.T) {
	got, err := parseAnchor("1700000000.5\n")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := time.Unix(1700000000, 500000000)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
