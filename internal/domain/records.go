package domain

// PlayState represents the playback state reported by the music backend
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

// ParsePlayState maps an MPD state string to a PlayState.
// Unknown values map to StateStopped.
func ParsePlayState(s string) PlayState {
	switch s {
	case "play":
		return StatePlaying
	case "pause":
		return StatePaused
	default:
		return StateStopped
	}
}

func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// TrackRecord is a snapshot of the currently playing track.
// Workers replace it wholesale on every poll; it is never mutated
// after publication.
type TrackRecord struct {
	Title    string
	Artist   string
	Album    string
	Duration float64 // seconds
	Elapsed  float64 // seconds
	State    PlayState
	Shuffle  bool
	Loop     bool
}

// Progress returns playback position as a ratio in [0, 1]. The backend
// may report elapsed > duration around track changes, so the result is
// clamped rather than trusted.
func (t TrackRecord) Progress() float64 {
	if t.Duration <= 0 {
		return 0
	}
	p := t.Elapsed / t.Duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// PlaylistSet is the backend-reported playlist names in display order.
// Duplicate names are possible and preserved.
type PlaylistSet struct {
	Names []string
}

// Printer states recognized for display; anything else is carried
// through as an opaque label.
const (
	PrinterStandby  = "standby"
	PrinterPrinting = "printing"
	PrinterPaused   = "paused"
	PrinterError    = "error"
)

// PrinterRecord is a snapshot of printer telemetry.
type PrinterRecord struct {
	State        string
	Progress     float64 // 0.0 - 1.0
	HotendTemp   float64 // °C
	HotendTarget float64
	BedTemp      float64
	BedTarget    float64
}

// ProgressRatio returns print progress clamped to [0, 1].
func (p PrinterRecord) ProgressRatio() float64 {
	if p.Progress < 0 {
		return 0
	}
	if p.Progress > 1 {
		return 1
	}
	return p.Progress
}

// ConnState tracks a worker's connection to its backend. There is no
// terminal error state: a worker that loses its backend goes back to
// Disconnected and retries on the next tick.
type ConnState int32

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (c ConnState) String() string {
	switch c {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// FallbackTrack returns the placeholder track published while the music
// backend is unreachable. The title makes the disconnected state
// visible on screen instead of freezing stale data.
func FallbackTrack() TrackRecord {
	return TrackRecord{
		Title:    "Mock Song – Connect Mopidy",
		Artist:   "Unknown Artist",
		Album:    "Unknown Album",
		Duration: 210,
		Elapsed:  0,
		State:    StateStopped,
	}
}

// FallbackPlaylists returns the placeholder playlist names shown while
// the music backend is unreachable.
func FallbackPlaylists() PlaylistSet {
	return PlaylistSet{Names: []string{
		"Chill Vibes",
		"Workout Beats",
		"Late Night Lo-Fi",
		"Rock Classics",
		"Piano Sessions",
		"Nature Sounds",
		"Synthwave Drive",
	}}
}

// FallbackPrinter returns the zero-valued telemetry published while the
// printer backend is unreachable.
func FallbackPrinter() PrinterRecord {
	return PrinterRecord{State: PrinterStandby}
}
