package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/mpetrik/skydeck/internal/domain"
)

func TestFmtTime(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61.7, "01:01"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{-5, "00:00"},
	}
	for _, tc := range cases {
		if got := fmtTime(tc.in); got != tc.want {
			t.Errorf("fmtTime(%f): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestFmtCountdown(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{90 * time.Second, "00:01:30"},
		{96 * time.Hour, "96:00:00"},
		{-time.Second, "00:00:00"},
	}
	for _, tc := range cases {
		if got := fmtCountdown(tc.in); got != tc.want {
			t.Errorf("fmtCountdown(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestVisiblePlaylistsNoFilterKeepsBackendOrder(t *testing.T) {
	m := Model{
		playlists: domain.PlaylistSet{Names: []string{"Zulu", "Alpha", "Zulu"}},
		filter:    textinput.New(),
	}

	got := m.visiblePlaylists()
	if len(got) != 3 || got[0] != "Zulu" || got[1] != "Alpha" || got[2] != "Zulu" {
		t.Errorf("Expected backend order with duplicates preserved, got %v", got)
	}
}

func TestVisiblePlaylistsFuzzyFilter(t *testing.T) {
	m := Model{
		playlists: domain.PlaylistSet{Names: []string{"Rock Classics", "Chill Vibes", "Piano Sessions"}},
		filter:    textinput.New(),
	}
	m.filter.SetValue("chill")

	got := m.visiblePlaylists()
	if len(got) != 1 || got[0] != "Chill Vibes" {
		t.Errorf("Expected [Chill Vibes], got %v", got)
	}
}
