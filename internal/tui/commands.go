package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mpetrik/skydeck/internal/domain"
)

// Command factories bridging worker channels into Bubble Tea messages.
// Each command blocks on one channel receive and is re-issued from
// Update, so the TUI consumes records at whatever pace the workers
// publish them.

func waitForTrack(ch <-chan domain.TrackRecord) tea.Cmd {
	return func() tea.Msg {
		return TrackMsg{Track: <-ch}
	}
}

func waitForPlaylists(ch <-chan domain.PlaylistSet) tea.Cmd {
	return func() tea.Msg {
		return PlaylistsMsg{Playlists: <-ch}
	}
}

func waitForPrinter(ch <-chan domain.PrinterRecord) tea.Cmd {
	return func() tea.Msg {
		return PrinterMsg{Printer: <-ch}
	}
}

// tickClock schedules the next sidebar refresh. The skyblock math is
// recomputed from scratch on every tick; there is nothing to keep in
// sync.
func tickClock(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return ClockTickMsg{Time: t}
	})
}
