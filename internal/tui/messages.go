package tui

import (
	"time"

	"github.com/mpetrik/skydeck/internal/domain"
)

// Message types for the TUI

// TrackMsg carries a freshly published track record
type TrackMsg struct {
	Track domain.TrackRecord
}

// PlaylistsMsg carries a freshly published playlist set
type PlaylistsMsg struct {
	Playlists domain.PlaylistSet
}

// PrinterMsg carries a freshly published printer record
type PrinterMsg struct {
	Printer domain.PrinterRecord
}

// ClockTickMsg drives the skyblock sidebar refresh
type ClockTickMsg struct {
	Time time.Time
}
